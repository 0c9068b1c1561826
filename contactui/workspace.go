package contactui

import (
	"time"

	"contactsui/contact"
	"contactsui/pkg/logger"

	"go.uber.org/zap"
)

type WorkspaceConfig struct {
	PageSize         int
	SearchDebounce   time.Duration
	SearchResetsPage bool
	Logger           *zap.SugaredLogger
}

// Workspace holds the controllers of one browser session. They share a
// mutation bus, so uploads, creates and deletes refresh the list, and one
// notification queue.
type Workspace struct {
	Notifications *Notifications
	Bus           *Bus
	List          *ListController
	Upload        *UploadController
	Create        *CreateController

	svc contact.Service
	log *zap.SugaredLogger
}

func NewWorkspace(svc contact.Service, cfg WorkspaceConfig) *Workspace {
	log := cfg.Logger
	if log == nil {
		log = logger.NOOPLogger
	}

	notes := NewNotifications()
	bus := NewBus()
	return &Workspace{
		Notifications: notes,
		Bus:           bus,
		List: NewListController(svc, notes, bus,
			WithPageSize(cfg.PageSize),
			WithSearchDebounce(cfg.SearchDebounce),
			WithSearchResetsPage(cfg.SearchResetsPage),
			WithLogger(log),
		),
		Upload: NewUploadController(svc, notes, bus, log),
		Create: NewCreateController(svc, notes, bus, log),
		svc:    svc,
		log:    log,
	}
}

// Edit builds an edit controller for id that reports through this session.
func (w *Workspace) Edit(id contact.ID, navigator Navigator) (*EditController, error) {
	return NewEditController(id, w.svc, w.Notifications, navigator, w.Bus, w.log)
}

func (w *Workspace) Close() {
	w.List.Close()
}
