package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, ok := NewInterval(start, end)
	require.True(t, ok)
	return iv
}

func TestNewInterval_RejectsEmptyAndInverted(t *testing.T) {
	now := time.Now()

	_, ok := NewInterval(now, now)
	require.False(t, ok, "zero-length interval")

	_, ok = NewInterval(now.Add(time.Hour), now)
	require.False(t, ok, "inverted interval")

	_, ok = NewInterval(now, now.Add(time.Hour))
	require.True(t, ok)
}

func TestInterval_OverlapsIsHalfOpen(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	nineToTen := mustInterval(t, base, base.Add(time.Hour))
	tenToEleven := mustInterval(t, base.Add(time.Hour), base.Add(2*time.Hour))
	nineThirtyToTenThirty := mustInterval(t, base.Add(30*time.Minute), base.Add(90*time.Minute))

	// Back-to-back slots share an instant but do not conflict.
	require.False(t, nineToTen.Overlaps(tenToEleven))
	require.False(t, tenToEleven.Overlaps(nineToTen))

	require.True(t, nineToTen.Overlaps(nineThirtyToTenThirty))
	require.True(t, nineThirtyToTenThirty.Overlaps(tenToEleven))

	// Containment counts as overlap.
	nineToNoon := mustInterval(t, base, base.Add(3*time.Hour))
	require.True(t, nineToNoon.Overlaps(tenToEleven))
	require.True(t, tenToEleven.Overlaps(nineToNoon))
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"urgent", PriorityUrgent, true},
		{"high", PriorityHigh, true},
		{"normal", PriorityNormal, true},
		{"low", PriorityLow, true},
		{"", PriorityNormal, true},
		{"  Urgent ", PriorityUrgent, true},
		{"asap", PriorityNormal, false},
	}
	for _, tc := range cases {
		got, ok := ParsePriority(tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
	}
}

func TestPriority_RankOrdering(t *testing.T) {
	require.Less(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	require.Less(t, PriorityHigh.Rank(), PriorityNormal.Rank())
	require.Less(t, PriorityNormal.Rank(), PriorityLow.Rank())
}

func TestNew_StartsPending(t *testing.T) {
	iv := mustInterval(t, time.Now(), time.Now().Add(time.Hour))
	r := New(" C-101 ", "2000003@geu.ac.in", "OS Lab", "extra class", "", iv, PriorityNormal)

	require.Equal(t, StatusPending, r.Status())
	require.True(t, r.IsPending())
	require.Equal(t, "C-101", r.RoomID())
	require.Nil(t, r.ApprovedAt())
	require.Nil(t, r.RejectedAt())
}

func TestCreateDTO_Ok(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	valid := CreateDTO{
		RoomID:      "C-101",
		RequesterID: "2000001@geu.ac.in",
		Purpose:     "makeup lecture",
		Start:       now,
		End:         now.Add(time.Hour),
		Priority:    "high",
	}
	fieldErrors, ok := valid.Ok()
	require.True(t, ok, "unexpected errors: %v", fieldErrors)

	missing := CreateDTO{Start: now, End: now.Add(time.Hour)}
	fieldErrors, ok = missing.Ok()
	require.False(t, ok)
	require.Contains(t, fieldErrors, "RoomID")
	require.Contains(t, fieldErrors, "RequesterID")
	require.Contains(t, fieldErrors, "Purpose")

	inverted := valid
	inverted.Start = now.Add(time.Hour)
	inverted.End = now
	fieldErrors, ok = inverted.Ok()
	require.False(t, ok)
	require.Contains(t, fieldErrors, "End")

	badPriority := valid
	badPriority.Priority = "asap"
	fieldErrors, ok = badPriority.Ok()
	require.False(t, ok)
	require.Contains(t, fieldErrors, "Priority")
}
