package contactui

import (
	"context"

	"contactsui/contact"
	"contactsui/errs"
	"contactsui/pkg/logger"

	"go.uber.org/zap"
)

// UploadController submits spreadsheets for bulk import.
type UploadController struct {
	svc      contact.Service
	notifier Notifier
	bus      *Bus
	log      *zap.SugaredLogger
}

func NewUploadController(svc contact.Service, notifier Notifier, bus *Bus, log *zap.SugaredLogger) *UploadController {
	if log == nil {
		log = logger.NOOPLogger
	}
	return &UploadController{svc: svc, notifier: notifier, bus: bus, log: log}
}

// Upload rejects anything but an exact spreadsheet media type before any
// request is made. Accepted files publish an Uploaded mutation whether the
// import succeeds or fails.
func (u *UploadController) Upload(ctx context.Context, up contact.Upload) error {
	if err := up.Validate(); err != nil {
		u.log.Infow("rejected upload", "filename", up.Filename, "mediaType", up.MediaType)
		u.notifier.Error(errs.ErrorMessage(err))
		return err
	}

	err := u.svc.UploadContacts(ctx, up)
	if err != nil {
		u.log.Errorw("uploading contacts failed", "error", err, "filename", up.Filename)
		u.notifier.Error("Failed to upload file.")
	} else {
		u.notifier.Success("File uploaded successfully!")
	}

	if u.bus != nil {
		u.bus.Publish(ctx, Mutation{Kind: Uploaded, Err: err})
	}
	return err
}
