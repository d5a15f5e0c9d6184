package design

import (
	"context"
	"encoding/json"
	"errors"

	"swarachna-api/internal/storage"

	"go.uber.org/zap"
)

// DraftStorageKey is the session key of the wizard draft.
const DraftStorageKey = "design_draft"

const (
	StepServiceType = iota
	StepFiles
	StepContact

	stepCount = 3
)

var stepTitles = [stepCount]string{
	StepServiceType: "Service type",
	StepFiles:       "Design files",
	StepContact:     "Contact details",
}

// loadDraft returns the stored draft. Missing or unreadable drafts start over
// at the first step.
func loadDraft(ctx context.Context, kv storage.Store, logger *zap.Logger) (*Draft, error) {
	raw, err := kv.Get(ctx, DraftStorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return &Draft{Files: []DraftFile{}}, nil
	}
	if err != nil {
		return nil, ErrDraftUnavailable.Wrap(err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		logger.Warn("discarding unreadable design draft", zap.Error(err))
		return &Draft{Files: []DraftFile{}}, nil
	}
	if d.Step < 0 || d.Step >= stepCount {
		d.Step = StepServiceType
	}
	if d.Files == nil {
		d.Files = []DraftFile{}
	}
	if len(d.Files) > maxFiles {
		d.Files = d.Files[:maxFiles]
	}
	return &d, nil
}

func saveDraft(ctx context.Context, kv storage.Store, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return ErrDraftUnavailable.Wrap(err)
	}
	if err := kv.Set(ctx, DraftStorageKey, string(raw)); err != nil {
		return ErrDraftUnavailable.Wrap(err)
	}
	return nil
}

func toResponse(d *Draft) DraftResponse {
	steps := make([]StepInfo, 0, stepCount)
	for i, title := range stepTitles {
		steps = append(steps, StepInfo{Index: i, Title: title})
	}
	return DraftResponse{
		Draft:     *d,
		StepCount: stepCount,
		IsFirst:   d.Step == 0,
		IsLast:    d.Step == stepCount-1,
		Steps:     steps,
	}
}
