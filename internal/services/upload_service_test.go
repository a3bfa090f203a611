package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/testutil"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// observingReader records the published upload state when the backend
// starts reading the file.
type observingReader struct {
	r        io.Reader
	uploads  UploadWorkflowInterface
	observed *models.UploadView
}

func (o *observingReader) Read(p []byte) (int, error) {
	if o.observed == nil {
		v := o.uploads.State(testReq.SID)
		o.observed = &v
	}
	return o.r.Read(p)
}

func TestUploadWorkflow_NoFileStaysIdle(t *testing.T) {
	f := newFixture()

	state := f.uploads.Upload(context.Background(), testReq, "", nil)

	assert.Equal(t, models.UploadIdle, state)
	assert.Zero(t, f.backend.CallCount("UploadCSV"))
	kind, msg := f.toast()
	assert.Equal(t, models.KindError, kind)
	assert.Equal(t, "Please select a CSV file", msg)
	assert.False(t, f.uploads.State(testReq.SID).Open())
}

func TestUploadWorkflow_PublishesUploadingWhileInFlight(t *testing.T) {
	f := newFixture()
	reader := &observingReader{r: strings.NewReader("name,url\n"), uploads: f.uploads}

	f.uploads.Upload(context.Background(), testReq, "p.csv", reader)

	require.NotNil(t, reader.observed)
	assert.Equal(t, models.UploadUploading, reader.observed.State)
	assert.True(t, reader.observed.ControlDisabled)
	assert.Equal(t, "Processing CSV file...", reader.observed.Status.Message)
	assert.Equal(t, models.KindLoading, reader.observed.Status.Kind)
}

func TestUploadWorkflow_Success(t *testing.T) {
	f := newFixture()
	f.backend.Upload = models.UploadResult{
		Message: "Imported 2 profiles.",
		Added:   2,
		Errors:  []string{"row 3: missing url", "row 4: duplicate"},
	}

	state := f.uploads.Upload(context.Background(), testReq, "p.csv", strings.NewReader("x"))

	assert.Equal(t, models.UploadSuccess, state)
	assert.Equal(t, "p.csv", f.backend.UploadedName)
	view := f.uploads.State(testReq.SID)
	assert.Equal(t, models.UploadSuccess, view.State)
	assert.False(t, view.ControlDisabled)
	assert.Equal(t, "Imported 2 profiles. Errors: row 3: missing url; row 4: duplicate", view.Status.Message)
	_, msg := f.toast()
	assert.Equal(t, "Imported 2 profile(s)", msg)
	assert.Equal(t, 1, f.backend.CallCount("Profiles"), "profiles hook reloads the list")
}

func TestUploadWorkflow_SuccessClosesAfterDelay(t *testing.T) {
	f := newFixture()
	f.backend.Upload = models.UploadResult{Message: "ok", Added: 1}
	f.uploads.Upload(context.Background(), testReq, "p.csv", strings.NewReader("x"))

	assert.Equal(t, 2*time.Second, f.cache.TTL(viewStateKey(testReq.SID, SectionUpload)))
	assert.True(t, f.uploads.Consume(testReq.SID).Open())

	f.cache.Advance(2 * time.Second)
	assert.Equal(t, models.UploadIdle, f.uploads.State(testReq.SID).State)
}

func TestUploadWorkflow_Failures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
		toast  string
	}{
		{"backend detail", &backend.APIError{Status: 400, Detail: "CSV must have a header"}, "CSV must have a header", "CSV must have a header"},
		{"no detail", &backend.APIError{Status: 500}, "Upload failed", "CSV upload failed"},
		{"transport", testutil.TransportFailure("upload-csv"), "Failed to upload CSV", "Failed to upload CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.backend.UploadErr = tt.err

			state := f.uploads.Upload(context.Background(), testReq, "p.csv", strings.NewReader("x"))

			assert.Equal(t, models.UploadError, state)
			view := f.uploads.State(testReq.SID)
			assert.Equal(t, tt.status, view.Status.Message)
			assert.Equal(t, models.KindError, view.Status.Kind)
			assert.False(t, view.ControlDisabled)
			_, msg := f.toast()
			assert.Equal(t, tt.toast, msg)
			assert.Zero(t, f.backend.CallCount("Profiles"))
		})
	}
}

func TestUploadWorkflow_ErrorShownOnce(t *testing.T) {
	f := newFixture()
	f.backend.UploadErr = &backend.APIError{Status: 400}
	f.uploads.Upload(context.Background(), testReq, "p.csv", strings.NewReader("x"))

	assert.Equal(t, models.UploadError, f.uploads.Consume(testReq.SID).State)
	assert.Equal(t, models.UploadIdle, f.uploads.Consume(testReq.SID).State)
}
