package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"formforge/internal/forms"
	"formforge/internal/google"
	"formforge/internal/llm"
	"formforge/pkg/schema"
)

// fakeGenerator returns canned completions and records requests.
type fakeGenerator struct {
	content  string
	err      error
	requests []llm.Request
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, req llm.Request) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.content, nil
}

// fakeDrive is an in-memory document store. failAll breaks folder setup;
// failFiles keeps folders working but breaks every file operation.
type fakeDrive struct {
	folders     map[string]string // parentID + "/" + name -> folderID
	files       map[string]*fakeFile
	failAll     bool
	failFiles   bool
	updateCalls int
	createCalls int
}

type fakeFile struct {
	id      string
	content string
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		folders: map[string]string{},
		files:   map[string]*fakeFile{},
	}
}

func (d *fakeDrive) FindFolder(_ context.Context, _ google.Session, name, parentID string) (string, bool, error) {
	if d.failAll {
		return "", false, fmt.Errorf("storage unavailable")
	}
	id, ok := d.folders[parentID+"/"+name]
	return id, ok, nil
}

func (d *fakeDrive) CreateFolder(_ context.Context, _ google.Session, name, parentID string) (string, error) {
	if d.failAll {
		return "", fmt.Errorf("storage unavailable")
	}
	id := uuid.NewString()
	d.folders[parentID+"/"+name] = id
	return id, nil
}

func (d *fakeDrive) FindFile(_ context.Context, _ google.Session, name, folderID string) (google.FileRef, bool, error) {
	if d.failAll || d.failFiles {
		return google.FileRef{}, false, fmt.Errorf("storage unavailable")
	}
	f, ok := d.files[folderID+"/"+name]
	if !ok {
		return google.FileRef{}, false, nil
	}
	return google.FileRef{ID: f.id, URL: "https://drive.test/" + f.id}, true, nil
}

func (d *fakeDrive) CreateFile(_ context.Context, _ google.Session, name, folderID, content string) (google.FileRef, error) {
	if d.failAll || d.failFiles {
		return google.FileRef{}, fmt.Errorf("storage unavailable")
	}
	d.createCalls++
	f := &fakeFile{id: uuid.NewString(), content: content}
	d.files[folderID+"/"+name] = f
	return google.FileRef{ID: f.id, URL: "https://drive.test/" + f.id}, nil
}

func (d *fakeDrive) UpdateFile(_ context.Context, _ google.Session, fileID, content string) error {
	if d.failAll || d.failFiles {
		return fmt.Errorf("storage unavailable")
	}
	d.updateCalls++
	for _, f := range d.files {
		if f.id == fileID {
			f.content = content
			return nil
		}
	}
	return fmt.Errorf("no such file %s", fileID)
}

// fakeCalendar is an in-memory event store keyed by dedup key.
type fakeCalendar struct {
	events      map[string]*schema.CalendarEvent
	inputs      map[string]google.EventInput
	failSummary string // CreateEvent fails when the summary contains this
	createCalls int
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{
		events: map[string]*schema.CalendarEvent{},
		inputs: map[string]google.EventInput{},
	}
}

func (c *fakeCalendar) FindEventByKey(_ context.Context, _ google.Session, key string) (*schema.CalendarEvent, error) {
	return c.events[key], nil
}

func (c *fakeCalendar) CreateEvent(_ context.Context, _ google.Session, in google.EventInput) (*schema.CalendarEvent, error) {
	if c.failSummary != "" && strings.Contains(in.Summary, c.failSummary) {
		return nil, fmt.Errorf("calendar rejected event")
	}
	c.createCalls++
	id := uuid.NewString()
	ev := &schema.CalendarEvent{EventID: id, EventURL: "https://calendar.test/" + id}
	c.events[in.DedupKey] = ev
	c.inputs[in.DedupKey] = in
	return ev, nil
}

// fakeFormsAPI records materialization calls.
type fakeFormsAPI struct {
	title       string
	description string
	items       []forms.CreateItemRequest
	failCreate  bool
}

func (f *fakeFormsAPI) CreateForm(_ context.Context, _ google.Session, title string) (string, error) {
	if f.failCreate {
		return "", fmt.Errorf("forms backend unavailable")
	}
	f.title = title
	return "form-123", nil
}

func (f *fakeFormsAPI) SetDescription(_ context.Context, _ google.Session, _, description string) error {
	f.description = description
	return nil
}

func (f *fakeFormsAPI) AppendItems(_ context.Context, _ google.Session, _ string, items []forms.CreateItemRequest) error {
	f.items = items
	return nil
}

func (f *fakeFormsAPI) ResponderURL(_ context.Context, _ google.Session, formID string) (string, error) {
	return "https://docs.test/forms/" + formID + "/viewform", nil
}
