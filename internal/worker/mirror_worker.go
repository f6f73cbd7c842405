package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	applog "gastos/internal/log"
	"gastos/internal/prefs"
)

// MirrorWorker copies saved collections from the primary preferences backend
// to a mirror backend.
type MirrorWorker struct {
	source prefs.Reader
	mirror prefs.Writer
}

func NewMirrorWorker(source prefs.Reader, mirror prefs.Writer) *MirrorWorker {
	return &MirrorWorker{
		source: source,
		mirror: mirror,
	}
}

// HandleCollectionSaved copies the blob named by msg. A blob that has
// disappeared from the source is skipped.
func (w *MirrorWorker) HandleCollectionSaved(ctx context.Context, msg *amqp.CollectionSavedMessage) error {
	slog.InfoContext(ctx, "Processing collection saved message",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldNamespace, msg.Namespace,
		applog.FieldKey, msg.Key,
		applog.FieldRecords, msg.Count)

	copied, err := w.copy(ctx, msg.Namespace, msg.Key)
	if err != nil {
		return err
	}
	if !copied {
		slog.WarnContext(ctx, "Collection missing from source, nothing mirrored",
			applog.FieldComponent, applog.ComponentWorker,
			applog.FieldNamespace, msg.Namespace,
			applog.FieldKey, msg.Key)
	}
	return nil
}

// StartupSync mirrors the given blob once, covering saves made while the
// worker was down.
func (w *MirrorWorker) StartupSync(ctx context.Context, namespace, key string) error {
	copied, err := w.copy(ctx, namespace, key)
	if err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	slog.InfoContext(ctx, "Startup sync completed",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpStartup,
		"mirrored", copied)
	return nil
}

func (w *MirrorWorker) copy(ctx context.Context, namespace, key string) (bool, error) {
	value, ok, err := w.source.GetString(ctx, namespace, key)
	if err != nil {
		return false, fmt.Errorf("read %s/%s from source: %w", namespace, key, err)
	}
	if !ok {
		return false, nil
	}
	if err := w.mirror.PutString(ctx, namespace, key, value); err != nil {
		return false, fmt.Errorf("write %s/%s to mirror: %w", namespace, key, err)
	}
	slog.DebugContext(ctx, "Collection mirrored",
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpMirror,
		applog.FieldNamespace, namespace,
		applog.FieldKey, key)
	return true, nil
}
