package concert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itstudent003/yoyebot/internal/queue"
)

type stopRecorder struct {
	pushes    []string
	pushTo    []string
	published []queue.QueueStoppedEvent
}

func (r *stopRecorder) notify(_ context.Context, to, text string) error {
	r.pushTo = append(r.pushTo, to)
	r.pushes = append(r.pushes, text)
	return nil
}

func (r *stopRecorder) publish(_ context.Context, ev queue.QueueStoppedEvent) error {
	r.published = append(r.published, ev)
	return nil
}

func newStopService(fs *fakeSheets, rec *stopRecorder) *StopService {
	return &StopService{
		Sheets:     fs,
		Resolver:   &Resolver{Sheets: fs, MasterSheetID: "master", MasterTab: "index"},
		GroupID:    "Cgroup1",
		Notify:     rec.notify,
		LogSheetID: "logsheet",
		LogTab:     "Logs",
		Publish:    rec.publish,
	}
}

func TestStopFlipsFlagNotifiesAndLogs(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|A2:O"] = [][]string{
		{"1", "", "Jane", "0810000000", "Uother"},
		{"7", "", "Mali", "0629999999", "Uabc", "", "18 ม.ค. 2569"},
	}
	rec := &stopRecorder{}
	s := newStopService(fs, rec)

	found, err := s.Stop(context.Background(), "Uabc")
	require.NoError(t, err)
	require.True(t, found)

	// Matched slice index 1 lives in sheet row 3.
	assert.Equal(t, "TRUE", fs.updated["sheet123|N3"])

	require.Len(t, rec.pushes, 1)
	assert.Equal(t, "Cgroup1", rec.pushTo[0])
	assert.Contains(t, rec.pushes[0], "หยุดกด")
	assert.Contains(t, rec.pushes[0], "งาน: ConcertA")
	assert.Contains(t, rec.pushes[0], "คิว: 7")
	assert.Contains(t, rec.pushes[0], "UID: Uabc")

	require.Len(t, fs.appended, 1)
	assert.Equal(t, "logsheet|Logs", fs.appendTo[0])
	row := fs.appended[0]
	require.Len(t, row, 7)
	assert.Contains(t, row[1], "ConcertA")
	assert.Equal(t, "Customer", row[2])
	assert.Equal(t, "Uabc", row[6])

	require.Len(t, rec.published, 1)
	assert.Equal(t, "ConcertA", rec.published[0].Concert)
	assert.Equal(t, "7", rec.published[0].QueueNo)
	assert.Equal(t, "Uabc", rec.published[0].UserID)
}

func TestStopReturnsFalseWhenUserAbsent(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|A2:O"] = [][]string{
		{"1", "", "Jane", "0810000000", "Uother"},
	}
	rec := &stopRecorder{}
	s := newStopService(fs, rec)

	found, err := s.Stop(context.Background(), "Unobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, fs.updated)
	assert.Empty(t, rec.pushes)
	assert.Empty(t, fs.appended)
}

func TestStopSkipsUnreadableConcerts(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "Broken", "badsheet", "Day1", nil)
	fs.rangeErrs["badsheet|A2:O"] = errors.New("403")
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|A2:O"] = [][]string{
		{"3", "", "Mali", "0629999999", "Uabc"},
	}
	rec := &stopRecorder{}
	s := newStopService(fs, rec)

	found, err := s.Stop(context.Background(), "Uabc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "TRUE", fs.updated["sheet123|N2"])
}

func TestStopPropagatesFlagWriteFailure(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|A2:O"] = [][]string{
		{"3", "", "Mali", "0629999999", "Uabc"},
	}
	fs.updateErr = errors.New("write denied")
	rec := &stopRecorder{}
	s := newStopService(fs, rec)

	_, err := s.Stop(context.Background(), "Uabc")
	require.Error(t, err)
	assert.Empty(t, rec.pushes)
}
