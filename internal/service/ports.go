// Package service implements the application use cases over the
// generation and collaborator clients. Collaborators are consumed through
// narrow interfaces so tests can substitute in-memory fakes.
package service

import (
	"context"

	"formforge/internal/forms"
	"formforge/internal/google"
	"formforge/pkg/schema"
)

// FormsAPI is the slice of the form-building backend the services need.
type FormsAPI interface {
	CreateForm(ctx context.Context, s google.Session, title string) (string, error)
	SetDescription(ctx context.Context, s google.Session, formID, description string) error
	AppendItems(ctx context.Context, s google.Session, formID string, items []forms.CreateItemRequest) error
	ResponderURL(ctx context.Context, s google.Session, formID string) (string, error)
}

// DriveAPI is the slice of the document-storage backend the services need.
type DriveAPI interface {
	FindFolder(ctx context.Context, s google.Session, name, parentID string) (string, bool, error)
	CreateFolder(ctx context.Context, s google.Session, name, parentID string) (string, error)
	FindFile(ctx context.Context, s google.Session, name, folderID string) (google.FileRef, bool, error)
	CreateFile(ctx context.Context, s google.Session, name, folderID, content string) (google.FileRef, error)
	UpdateFile(ctx context.Context, s google.Session, fileID, content string) error
}

// CalendarAPI is the slice of the calendar backend the services need.
type CalendarAPI interface {
	FindEventByKey(ctx context.Context, s google.Session, key string) (*schema.CalendarEvent, error)
	CreateEvent(ctx context.Context, s google.Session, in google.EventInput) (*schema.CalendarEvent, error)
}
