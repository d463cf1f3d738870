package rangeset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rdmakit/memreg/pkg/memory"
)

func mustInsert(t *testing.T, s *Set, r memory.Range) {
	t.Helper()
	if err := s.Insert(r); err != nil {
		t.Fatalf("unexpected error inserting %s: %s", r, err)
	}
}

func Test_Insert_Validation(t *testing.T) {
	type config struct {
		name string
		r    memory.Range
		err  error
	}

	testCases := []config{
		{
			name: "Empty_Range",
			r:    memory.Range{Start: 8, End: 8},
			err:  memory.ErrInvalidRange,
		},
		{
			name: "Inverted_Range",
			r:    memory.Range{Start: 16, End: 8},
			err:  memory.ErrInvalidRange,
		},
		{
			name: "End_Past_Limit",
			r:    memory.Range{Start: 0, End: 129},
			err:  memory.ErrInvalidRange,
		},
		{
			name: "Full_Limit",
			r:    memory.Range{Start: 0, End: 128},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(128)
			err := s.Insert(tc.r)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error=%v, got error=%v", tc.err, err)
			}
		})
	}
}

func Test_Insert_OverlapRejected(t *testing.T) {
	s := New(128)
	mustInsert(t, s, memory.Range{Start: 0, End: 64})

	if err := s.Insert(memory.Range{Start: 0, End: 64}); !errors.Is(err, memory.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
	if err := s.Insert(memory.Range{Start: 63, End: 65}); !errors.Is(err, memory.ErrOverlap) {
		t.Fatalf("expected ErrOverlap for straddling range, got %v", err)
	}
	mustInsert(t, s, memory.Range{Start: 64, End: 128})
}

func Test_Ranges_SortedByStart(t *testing.T) {
	s := New(128)
	mustInsert(t, s, memory.Range{Start: 96, End: 128})
	mustInsert(t, s, memory.Range{Start: 0, End: 16})
	mustInsert(t, s, memory.Range{Start: 32, End: 64})

	want := []memory.Range{
		{Start: 0, End: 16},
		{Start: 32, End: 64},
		{Start: 96, End: 128},
	}
	if diff := cmp.Diff(want, s.Ranges()); diff != "" {
		t.Fatalf("ranges out of order (-want +got):\n%s", diff)
	}
}

func Test_Reserve_FirstFit(t *testing.T) {
	type config struct {
		name     string
		occupied []memory.Range
		size     uint64
		want     memory.Range
		err      error
	}

	testCases := []config{
		{
			name: "Empty_Set_Starts_At_Zero",
			size: 32,
			want: memory.Range{Start: 0, End: 32},
		},
		{
			name:     "Interior_Gap_Wins_Over_Tail",
			occupied: []memory.Range{{Start: 0, End: 16}, {Start: 48, End: 64}},
			size:     32,
			want:     memory.Range{Start: 16, End: 48},
		},
		{
			name:     "Tail_Gap",
			occupied: []memory.Range{{Start: 0, End: 32}, {Start: 48, End: 64}},
			size:     32,
			want:     memory.Range{Start: 64, End: 96},
		},
		{
			name:     "No_Gap_Large_Enough",
			occupied: []memory.Range{{Start: 0, End: 120}},
			size:     32,
			err:      memory.ErrOutOfSpace,
		},
		{
			name: "Zero_Size",
			size: 0,
			err:  memory.ErrInvalidRange,
		},
		{
			name:     "Huge_Size_Does_Not_Wrap",
			occupied: []memory.Range{{Start: 0, End: 16}},
			size:     math.MaxUint64,
			err:      memory.ErrOutOfSpace,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(128)
			for _, r := range tc.occupied {
				mustInsert(t, s, r)
			}
			got, err := s.Reserve(tc.size)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error=%v, got error=%v", tc.err, err)
			}
			if err == nil && got != tc.want {
				t.Fatalf("expected range %s, got %s", tc.want, got)
			}
		})
	}
}

func Test_Remove_ExactMatchOnly(t *testing.T) {
	s := New(128)
	mustInsert(t, s, memory.Range{Start: 0, End: 64})

	if err := s.Remove(memory.Range{Start: 0, End: 32}); !errors.Is(err, memory.ErrNotAllocated) {
		t.Fatalf("expected ErrNotAllocated for partial match, got %v", err)
	}
	if err := s.Remove(memory.Range{Start: 0, End: 64}); err != nil {
		t.Fatalf("unexpected error removing exact range: %s", err)
	}
	if !s.Empty() {
		t.Fatalf("set should be empty, has %d ranges", s.Len())
	}
	if err := s.Remove(memory.Range{Start: 0, End: 64}); !errors.Is(err, memory.ErrNotAllocated) {
		t.Fatalf("expected ErrNotAllocated for double remove, got %v", err)
	}
}

func Test_Seal_Lifecycle(t *testing.T) {
	s := New(128)
	mustInsert(t, s, memory.Range{Start: 0, End: 64})

	// A set with live ranges cannot seal; it stays fully usable.
	n, err := s.Seal()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 live range reported, got %d", n)
	}
	mustInsert(t, s, memory.Range{Start: 64, End: 128})

	for _, r := range s.Ranges() {
		if err := s.Remove(r); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if n, err := s.Seal(); err != nil || n != 0 {
		t.Fatalf("empty set failed to seal: n=%d err=%v", n, err)
	}

	// Every mutation on a sealed set reports the closed state.
	if err := s.Insert(memory.Range{Start: 0, End: 8}); !errors.Is(err, memory.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed from Insert, got %v", err)
	}
	if _, err := s.Reserve(8); !errors.Is(err, memory.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed from Reserve, got %v", err)
	}
	if err := s.Remove(memory.Range{Start: 0, End: 8}); !errors.Is(err, memory.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed from Remove, got %v", err)
	}
	if _, err := s.Seal(); !errors.Is(err, memory.ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed from double Seal, got %v", err)
	}

	// Unseal reopens the set for a retried release.
	s.Unseal()
	mustInsert(t, s, memory.Range{Start: 0, End: 8})
}

func Test_Remove_ReopensGap(t *testing.T) {
	s := New(128)
	if _, err := s.Reserve(128); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := s.Reserve(1); !errors.Is(err, memory.ErrOutOfSpace) {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}
	if err := s.Remove(memory.Range{Start: 0, End: 128}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got, err := s.Reserve(128)
	if err != nil {
		t.Fatalf("unexpected error after reclaim: %s", err)
	}
	if (got != memory.Range{Start: 0, End: 128}) {
		t.Fatalf("expected full range, got %s", got)
	}
}
