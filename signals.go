package facet

import (
	"context"
	"strings"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for projection events.
var (
	SignalKindCreated        = capitan.NewSignal("facet.kind.created", "Kind instantiated")
	SignalProjectStart       = capitan.NewSignal("facet.project.start", "Projection beginning")
	SignalProjectComplete    = capitan.NewSignal("facet.project.complete", "Projection finished")
	SignalCollectionStart    = capitan.NewSignal("facet.collection.start", "Collection projection beginning")
	SignalCollectionComplete = capitan.NewSignal("facet.collection.complete", "Collection projection finished")
)

// Keys for typed event data.
var (
	KeyKind       = capitan.NewStringKey("kind")
	KeyModes      = capitan.NewStringKey("modes")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeyItemCount  = capitan.NewIntKey("item_count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

func emitKindCreated(ctx context.Context, kind string) {
	capitan.Emit(ctx, SignalKindCreated,
		KeyKind.Field(kind),
	)
}

func emitProjectStart(ctx context.Context, kind string, modes []string) {
	capitan.Emit(ctx, SignalProjectStart,
		KeyKind.Field(kind),
		KeyModes.Field(strings.Join(modes, ",")),
	)
}

func emitProjectComplete(ctx context.Context, kind string, modes []string, duration time.Duration, fieldCount int, err error) {
	fields := []capitan.Field{
		KeyKind.Field(kind),
		KeyModes.Field(strings.Join(modes, ",")),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(fieldCount),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalProjectComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalProjectComplete, fields...)
	}
}

func emitCollectionStart(ctx context.Context, kind string, items int) {
	capitan.Emit(ctx, SignalCollectionStart,
		KeyKind.Field(kind),
		KeyItemCount.Field(items),
	)
}

func emitCollectionComplete(ctx context.Context, kind string, duration time.Duration, items int, err error) {
	fields := []capitan.Field{
		KeyKind.Field(kind),
		KeyDuration.Field(duration),
		KeyItemCount.Field(items),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCollectionComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCollectionComplete, fields...)
	}
}
