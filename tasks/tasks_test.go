package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/media"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cdn string = "https://cdn.example.com/"

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}

	q.tasks = append(q.tasks, task)

	return &asynq.TaskInfo{ID: "1", Queue: "default", Type: task.Type()}, nil
}

type fakeMedia struct {
	objects []media.Object
	deleted []string
}

func (m *fakeMedia) Delete(_ context.Context, id string) error {
	if !media.IsAssetID(id) {
		return media.ErrInvalidAssetID
	}

	m.deleted = append(m.deleted, id)

	return nil
}

func (m *fakeMedia) List(_ context.Context, _ string) ([]media.Object, error) {
	return m.objects, nil
}

func (m *fakeMedia) AssetID(u string) (string, bool) {
	if !strings.HasPrefix(u, cdn) {
		return "", false
	}

	return strings.TrimPrefix(u, cdn), true
}

type staticContent struct {
	content models.SiteContent
	err     error
}

func (s staticContent) Find(_ context.Context) (models.SiteContent, error) {
	if s.err != nil {
		return models.SiteContent{}, s.err
	}

	return s.content, nil
}

type unreachableBackend struct{}

func (unreachableBackend) Find(_ context.Context) (models.SiteContent, error) {
	return models.SiteContent{}, fmt.Errorf("%w: connection refused", store.ErrUnavailable)
}

func (unreachableBackend) Upsert(_ context.Context, _ models.SiteContent, _ models.ContentPatch) error {
	return store.ErrUnavailable
}

func (unreachableBackend) Close(_ context.Context) error {
	return nil
}

type fakeMailer struct {
	sent []helpers.EmailOpts
	err  error
}

func (m *fakeMailer) Send(_ context.Context, opts helpers.EmailOpts, _ map[string]interface{}) error {
	m.sent = append(m.sent, opts)
	return m.err
}

func TestMediaJanitor(t *testing.T) {
	q := &fakeQueue{}
	j := NewMediaJanitor(q, &fakeMedia{})

	require.NoError(t, j.RemoveMedia(context.Background(), cdn+"portfolio/hero/a.jpg"))
	require.NoError(t, j.RemoveMedia(context.Background(), "https://elsewhere.example.org/a.jpg"))

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskMediaDelete, q.tasks[0].Type())

	p := MediaDeletePayload{}
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, "portfolio/hero/a.jpg", p.ID)
}

func TestMediaJanitorQueueFailure(t *testing.T) {
	j := NewMediaJanitor(&fakeQueue{err: errors.New("redis down")}, &fakeMedia{})

	assert.Error(t, j.RemoveMedia(context.Background(), cdn+"portfolio/hero/a.jpg"))
}

func TestHandleMediaDeleteTask(t *testing.T) {
	m := &fakeMedia{}
	h := &Handlers{Media: m}

	task, err := NewMediaDeleteTask("portfolio/gallery/b.png")
	require.NoError(t, err)
	require.NoError(t, h.HandleMediaDeleteTask(context.Background(), task))
	assert.Equal(t, []string{"portfolio/gallery/b.png"}, m.deleted)

	task, err = NewMediaDeleteTask("../etc/passwd")
	require.NoError(t, err)
	err = h.HandleMediaDeleteTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.HandleMediaDeleteTask(context.Background(), asynq.NewTask(TaskMediaDelete, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSweepOrphans(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)

	c := models.Default()
	c.Hero.Images = []string{cdn + "portfolio/hero/kept.jpg"}
	c.Gallery.Images = []string{cdn + "portfolio/gallery/kept.jpg"}

	m := &fakeMedia{objects: []media.Object{
		{ID: "portfolio/hero/kept.jpg", LastModified: old},
		{ID: "portfolio/gallery/kept.jpg", LastModified: old},
		{ID: "portfolio/hero/orphan.jpg", LastModified: old},
		{ID: "portfolio/hero/fresh.jpg", LastModified: now.Add(-time.Hour)},
	}}

	h := &Handlers{Media: m, Content: staticContent{content: c}}

	deleted, err := h.SweepOrphans(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio/hero/orphan.jpg"}, deleted)
	assert.Equal(t, []string{"portfolio/hero/orphan.jpg"}, m.deleted)
}

func TestSweepOrphansKeepsMediaWhenContentUnreadable(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-48 * time.Hour)

	tests := map[string]struct {
		content ContentLoader
		wantErr bool
	}{
		"store unavailable": {
			content: store.New(unreachableBackend{}, time.Second),
			wantErr: true,
		},
		"no document yet": {
			content: store.New(store.NewMemoryBackend(), time.Second),
			wantErr: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := &fakeMedia{objects: []media.Object{
				{ID: "portfolio/hero/a.png", LastModified: old},
				{ID: "portfolio/gallery/b.png", LastModified: old},
			}}

			h := &Handlers{Media: m, Content: tt.content}

			deleted, err := h.SweepOrphans(context.Background(), now)
			if tt.wantErr {
				assert.ErrorIs(t, err, store.ErrUnavailable)
				assert.Error(t, h.HandleMediaSweepTask(context.Background(), asynq.NewTask(TaskMediaSweep, nil)))
			} else {
				assert.NoError(t, err)
			}

			assert.Empty(t, deleted)
			assert.Empty(t, m.deleted)
		})
	}
}

func TestHandleEmailDeliveryTask(t *testing.T) {
	mailer := &fakeMailer{}
	h := &Handlers{Mailer: mailer}

	opts := helpers.EmailOpts{Subject: "Hi", TemplateName: "contact_message", ToList: []string{"owner@example.com"}}
	task, err := NewEmailDeliveryTask(opts, map[string]interface{}{"Name": "Jane"})
	require.NoError(t, err)

	require.NoError(t, h.HandleEmailDeliveryTask(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, opts, mailer.sent[0])

	mailer.err = errors.New("smtp down")
	err = h.HandleEmailDeliveryTask(context.Background(), task)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)

	err = h.HandleEmailDeliveryTask(context.Background(), asynq.NewTask(TaskEmailDelivery, []byte(`{"source":{}}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNewEmail(t *testing.T) {
	q := &fakeQueue{}

	assert.Error(t, NewEmail(context.Background(), q, helpers.EmailOpts{Subject: "Hi"}, nil))
	assert.Empty(t, q.tasks)

	opts := helpers.EmailOpts{Subject: "Hi", TemplateName: "contact_message", ToList: []string{"owner@example.com"}}
	require.NoError(t, NewEmail(context.Background(), q, opts, nil))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskEmailDelivery, q.tasks[0].Type())
}

func TestParseTasksConfig(t *testing.T) {
	configs, err := parseTasksConfig([]byte("configs:\n  - cronspec: \"30 3 * * *\"\n    task_type: media:sweep\n    queue: low\n"))
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "30 3 * * *", configs[0].Cronspec)
	assert.Equal(t, TaskMediaSweep, configs[0].Task.Type())
	assert.Len(t, configs[0].Opts, 1)

	configs, err = parseTasksConfig([]byte("configs:\n  - cronspec: \"@hourly\"\n    task_type: media:sweep\n    timeout: 5m\n"))
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Len(t, configs[0].Opts, 1)

	_, err = parseTasksConfig([]byte("configs:\n  - cronspec: \"@hourly\"\n    task_type: email:delivery\n"))
	assert.Error(t, err)

	_, err = parseTasksConfig([]byte("configs:\n  - task_type: media:sweep\n"))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	configs, err := NewTasksFileProvider("config.yml").GetConfigs()
	require.NoError(t, err)
	require.NotEmpty(t, configs)
	assert.Equal(t, TaskMediaSweep, configs[0].Task.Type())
}

func TestMediaTasksWithoutMedia(t *testing.T) {
	h := &Handlers{}

	task, err := NewMediaDeleteTask("portfolio/hero/a.png")
	require.NoError(t, err)

	err = h.HandleMediaDeleteTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.NoError(t, h.HandleMediaSweepTask(context.Background(), asynq.NewTask(TaskMediaSweep, nil)))
}
