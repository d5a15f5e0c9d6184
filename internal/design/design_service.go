package design

import (
	"bufio"
	"context"
	"errors"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"swarachna-api/internal/catalog"
	"swarachna-api/internal/cloudinary"
	"swarachna-api/internal/email"
	"swarachna-api/internal/pkg/apperror"
	"swarachna-api/internal/session"
	"swarachna-api/internal/stepper"

	"go.uber.org/zap"
)

const (
	maxFiles    = 10
	MaxFileSize = 10 << 20

	lockStripes = 64
)

//go:generate mockgen -source=design_service.go -destination=../mock/design/design_service_mock.go -package=mock
type Service interface {
	Draft(ctx context.Context, sessionID string) (DraftResponse, error)
	Update(ctx context.Context, sessionID string, req UpdateDraftRequest) (DraftResponse, error)
	AddFile(ctx context.Context, sessionID string, file FileUpload) (DraftResponse, error)
	RemoveFile(ctx context.Context, sessionID string, index int) (DraftResponse, error)
	// Next validates the current step and advances; on the last step it
	// submits the request.
	Next(ctx context.Context, sessionID, submittedBy string) (NextResponse, error)
	Back(ctx context.Context, sessionID string) (DraftResponse, error)
	GoTo(ctx context.Context, sessionID string, step int) (DraftResponse, error)
	Discard(ctx context.Context, sessionID string) error
}

type Deps struct {
	Sessions *session.Manager
	Catalog  *catalog.Catalog
	Uploader cloudinary.Service
	EmailSvc email.Service
	Logger   *zap.Logger
	Now      func() time.Time
}

type service struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	uploader cloudinary.Service
	emailSvc email.Service
	logger   *zap.Logger
	now      func() time.Time

	locks [lockStripes]sync.Mutex
}

func NewService(deps Deps) Service {
	if deps.Sessions == nil {
		panic("session manager cannot be nil")
	}
	if deps.Catalog == nil {
		panic("catalog cannot be nil")
	}
	if deps.Uploader == nil {
		deps.Uploader = cloudinary.NewDisabledService()
	}
	if deps.EmailSvc == nil {
		deps.EmailSvc = email.NewNoopService()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{
		sessions: deps.Sessions,
		catalog:  deps.Catalog,
		uploader: deps.Uploader,
		emailSvc: deps.EmailSvc,
		logger:   deps.Logger,
		now:      deps.Now,
	}
}

func (s *service) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

type draftChange int

const (
	draftKept draftChange = iota
	draftSaved
	draftDeleted
)

// withDraft loads the draft under the session lock, lets fn mutate it and
// saves or deletes it as fn reports.
func (s *service) withDraft(ctx context.Context, sessionID string, fn func(*Draft) (draftChange, error)) (*Draft, error) {
	sess, err := s.sessions.Open(sessionID)
	if err != nil {
		return nil, err
	}

	mu := s.lockFor(sess.ID)
	mu.Lock()
	defer mu.Unlock()

	d, err := loadDraft(ctx, sess.Store, s.logger.With(zap.String("session_id", sess.ID)))
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return d, nil
	}

	// a failed fn may still move the draft, e.g. back to the step that failed
	change, ferr := fn(d)
	switch change {
	case draftSaved:
		d.UpdatedAt = s.now()
		if err := saveDraft(ctx, sess.Store, d); err != nil {
			return nil, err
		}
	case draftDeleted:
		if err := sess.Store.Delete(ctx, DraftStorageKey); err != nil {
			return nil, ErrDraftUnavailable.Wrap(err)
		}
	}
	if ferr != nil {
		return nil, ferr
	}
	return d, nil
}

func (s *service) Draft(ctx context.Context, sessionID string) (DraftResponse, error) {
	d, err := s.withDraft(ctx, sessionID, nil)
	if err != nil {
		return DraftResponse{}, err
	}
	return toResponse(d), nil
}

func (s *service) Update(ctx context.Context, sessionID string, req UpdateDraftRequest) (DraftResponse, error) {
	if req.ServiceType != nil {
		st := strings.TrimSpace(*req.ServiceType)
		if st != "" && !s.catalog.HasService(st) {
			return DraftResponse{}, ErrUnknownServiceType
		}
	}

	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		if req.ServiceType != nil {
			d.ServiceType = strings.TrimSpace(*req.ServiceType)
		}
		if req.ContactInfo != nil {
			d.ContactInfo = strings.TrimSpace(*req.ContactInfo)
		}
		if req.Notes != nil {
			d.Notes = strings.TrimSpace(*req.Notes)
		}
		return draftSaved, nil
	})
	if err != nil {
		return DraftResponse{}, err
	}
	return toResponse(d), nil
}

func (s *service) AddFile(ctx context.Context, sessionID string, file FileUpload) (DraftResponse, error) {
	if file.Size > MaxFileSize {
		return DraftResponse{}, ErrFileTooLarge
	}

	body := bufio.NewReaderSize(io.LimitReader(file.Body, MaxFileSize+1), 512)
	head, _ := body.Peek(512)
	contentType := http.DetectContentType(head)
	if !acceptedType(contentType) {
		return DraftResponse{}, ErrUnsupportedFileType
	}

	// re-checked under the lock once the upload is done
	current, err := s.withDraft(ctx, sessionID, nil)
	if err != nil {
		return DraftResponse{}, err
	}
	if len(current.Files) >= maxFiles {
		return DraftResponse{}, ErrTooManyFiles
	}

	counted := &countingReader{r: body}
	uploaded, err := s.uploader.Upload(ctx, counted, file.Name)
	if err != nil {
		s.logger.Error("design file upload failed", zap.String("session_id", sessionID), zap.Error(err))
		return DraftResponse{}, err
	}
	if counted.n > MaxFileSize {
		s.discardAsset(ctx, uploaded.PublicID, uploaded.ResourceType)
		return DraftResponse{}, ErrFileTooLarge
	}

	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		if len(d.Files) >= maxFiles {
			return draftKept, ErrTooManyFiles
		}
		d.Files = append(d.Files, DraftFile{
			Name:         displayName(file.Name),
			URL:          uploaded.URL,
			PublicID:     uploaded.PublicID,
			ResourceType: uploaded.ResourceType,
			ContentType:  contentType,
			Size:         counted.n,
		})
		return draftSaved, nil
	})
	if err != nil {
		if errors.Is(err, ErrTooManyFiles) {
			s.discardAsset(ctx, uploaded.PublicID, uploaded.ResourceType)
		}
		return DraftResponse{}, err
	}
	return toResponse(d), nil
}

func (s *service) RemoveFile(ctx context.Context, sessionID string, index int) (DraftResponse, error) {
	var removed DraftFile
	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		if index < 0 || index >= len(d.Files) {
			return draftKept, ErrFileNotFound
		}
		removed = d.Files[index]
		d.Files = append(d.Files[:index], d.Files[index+1:]...)
		return draftSaved, nil
	})
	if err != nil {
		return DraftResponse{}, err
	}

	s.discardAsset(ctx, removed.PublicID, removed.ResourceType)
	return toResponse(d), nil
}

func (s *service) Next(ctx context.Context, sessionID, submittedBy string) (NextResponse, error) {
	var (
		outcome stepper.Outcome
		snap    Draft
	)
	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		eng, reason, err := s.engineFor(d)
		if err != nil {
			return draftKept, err
		}

		outcome, err = eng.GoNext(ctx)
		if err != nil {
			return draftKept, stepError(err, *reason)
		}
		if outcome == stepper.OutcomeCompleted {
			// forward jumps skip intermediate steps, so check them all again
			if bad, step := s.firstInvalid(d); bad != nil {
				d.Step = step
				return draftSaved, bad
			}
			// dropped while locked so the draft is submitted once
			snap = *d
			return draftDeleted, nil
		}
		return draftSaved, nil
	})
	if err != nil {
		return NextResponse{}, err
	}

	if outcome != stepper.OutcomeCompleted {
		res := toResponse(d)
		return NextResponse{Draft: &res}, nil
	}

	sent := s.submit(ctx, snap, submittedBy)
	return NextResponse{Submitted: true, NotificationSent: sent}, nil
}

func (s *service) Back(ctx context.Context, sessionID string) (DraftResponse, error) {
	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		eng, _, err := s.engineFor(d)
		if err != nil {
			return draftKept, err
		}
		if !eng.GoBack() {
			return draftKept, nil
		}
		return draftSaved, nil
	})
	if err != nil {
		return DraftResponse{}, err
	}
	return toResponse(d), nil
}

func (s *service) GoTo(ctx context.Context, sessionID string, step int) (DraftResponse, error) {
	if step < 0 || step >= stepCount {
		return DraftResponse{}, ErrInvalidStep
	}

	d, err := s.withDraft(ctx, sessionID, func(d *Draft) (draftChange, error) {
		eng, reason, err := s.engineFor(d)
		if err != nil {
			return draftKept, err
		}
		from := d.Step
		if err := eng.GoToStep(ctx, step); err != nil {
			return draftKept, stepError(err, *reason)
		}
		if d.Step == from {
			return draftKept, nil
		}
		return draftSaved, nil
	})
	if err != nil {
		return DraftResponse{}, err
	}
	return toResponse(d), nil
}

func (s *service) Discard(ctx context.Context, sessionID string) error {
	d, err := s.withDraft(ctx, sessionID, func(*Draft) (draftChange, error) {
		return draftDeleted, nil
	})
	if err != nil {
		return err
	}
	for _, f := range d.Files {
		s.discardAsset(ctx, f.PublicID, f.ResourceType)
	}
	return nil
}

// engineFor builds a stepper positioned on the draft's step. Step changes are
// written straight into d; *reason holds the error of the last failed check.
func (s *service) engineFor(d *Draft) (*stepper.Engine, **apperror.AppError, error) {
	reason := new(*apperror.AppError)
	eng, err := stepper.New(stepCount,
		stepper.WithStartIndex(d.Step),
		stepper.WithLogger(s.logger),
		stepper.WithValidator(func(_ context.Context, step int) (bool, error) {
			*reason = s.checkStep(d, step)
			return *reason == nil, nil
		}),
		stepper.WithStepChange(func(step int) {
			d.Step = step
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	return eng, reason, nil
}

func (s *service) checkStep(d *Draft, step int) *apperror.AppError {
	switch step {
	case StepServiceType:
		if strings.TrimSpace(d.ServiceType) == "" {
			return ErrServiceTypeRequired
		}
		if !s.catalog.HasService(d.ServiceType) {
			return ErrUnknownServiceType
		}
	case StepFiles:
		if len(d.Files) == 0 {
			return ErrFilesRequired
		}
	case StepContact:
		if strings.TrimSpace(d.ContactInfo) == "" {
			return ErrContactRequired
		}
	}
	return nil
}

// firstInvalid checks a finished draft in submission order: files, service
// type, contact.
func (s *service) firstInvalid(d *Draft) (*apperror.AppError, int) {
	for _, step := range []int{StepFiles, StepServiceType, StepContact} {
		if err := s.checkStep(d, step); err != nil {
			return err, step
		}
	}
	return nil, 0
}

func (s *service) submit(ctx context.Context, d Draft, submittedBy string) bool {
	title := d.ServiceType
	if svc, ok := s.catalog.Service(d.ServiceType); ok {
		title = svc.Title
	}

	msg := email.DesignSubmissionEmail{
		ServiceID:    d.ServiceType,
		ServiceTitle: title,
		ContactInfo:  d.ContactInfo,
		Notes:        d.Notes,
		SubmittedBy:  submittedBy,
		SubmittedAt:  s.now(),
	}
	urls := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		msg.Files = append(msg.Files, email.DesignFile{Name: f.Name, URL: f.URL})
		urls = append(urls, f.URL)
	}

	if err := s.emailSvc.SendDesignSubmissionEmail(ctx, msg); err != nil {
		// the draft is gone after this, so keep enough to follow up by hand
		s.logger.Error("design submission email failed",
			zap.String("service_type", d.ServiceType),
			zap.String("contact_info", d.ContactInfo),
			zap.Strings("files", urls),
			zap.Error(err),
		)
		return false
	}

	s.logger.Info("design request submitted",
		zap.String("service_type", d.ServiceType),
		zap.Int("files", len(d.Files)),
	)
	return true
}

func (s *service) discardAsset(ctx context.Context, publicID, resourceType string) {
	if publicID == "" {
		return
	}
	if err := s.uploader.Delete(ctx, publicID, resourceType); err != nil {
		s.logger.Warn("failed to delete design asset", zap.String("public_id", publicID), zap.Error(err))
	}
}

func stepError(err error, reason *apperror.AppError) error {
	switch {
	case errors.Is(err, stepper.ErrValidationFailed) && reason != nil:
		return reason
	case errors.Is(err, stepper.ErrStepOutOfRange):
		return ErrInvalidStep
	default:
		return err
	}
}

func acceptedType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "design"
	}
	if r := []rune(name); len(r) > 120 {
		name = string(r[:120])
	}
	return name
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
