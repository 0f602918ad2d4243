package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestArrowKeysAreHeld(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "\x1b[A")
	in := s.read(now)
	if !in.Up || in.Down || !in.Directional {
		t.Fatalf("expected up held, got %+v", in)
	}

	in = s.read(now.Add(keyHoldDuration / 2))
	if !in.Up || in.Directional {
		t.Fatalf("expected up still held without a new press, got %+v", in)
	}

	in = s.read(now.Add(keyHoldDuration))
	if in.Up {
		t.Fatal("expected up released after the hold duration")
	}
}

func TestLetterKeys(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "ws")
	in := s.read(now)
	if !in.Up || !in.Down {
		t.Fatalf("expected both held, got %+v", in)
	}

	feed(s, "r")
	if in = s.read(now); !in.Reset || in.Pause || in.Quit {
		t.Fatalf("expected reset, got %+v", in)
	}

	feed(s, "Q")
	if in = s.read(now); !in.Quit {
		t.Fatal("expected quit")
	}

	feed(s, "\x03")
	if in = s.read(now); !in.Quit {
		t.Fatal("expected ctrl-c to quit")
	}
}

func TestPauseTogglesPerPress(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, " ")
	if in := s.read(now); !in.Pause {
		t.Fatal("expected a pause toggle")
	}
	feed(s, "  ")
	if in := s.read(now); in.Pause {
		t.Fatal("two presses in one frame should cancel out")
	}
	if in := s.read(now); in.Pause || in.Active {
		t.Fatalf("pause must not repeat without a press, got %+v", in)
	}
}

func TestMouseReport(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "\x1b[<35;12;7M\x1b[<35;14;9M")
	in := s.read(now)
	if !in.HasPointer || in.PointerCol != 14 || in.PointerRow != 9 {
		t.Fatalf("expected the last report at (14, 9), got %+v", in)
	}
	if in.Directional {
		t.Fatal("mouse motion is not a directional key")
	}

	if in = s.read(now); in.HasPointer {
		t.Fatal("pointer reported again without motion")
	}
}

func TestSplitEscapeSequence(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "\x1b[<35;4")
	if in := s.read(now); in.HasPointer || in.Quit {
		t.Fatalf("incomplete report handled early: %+v", in)
	}
	feed(s, ";2m")
	in := s.read(now)
	if !in.HasPointer || in.PointerCol != 4 || in.PointerRow != 2 {
		t.Fatalf("expected (4, 2) after the sequence completed, got %+v", in)
	}

	feed(s, "\x1b")
	s.read(now)
	feed(s, "[B")
	if in = s.read(now); !in.Down {
		t.Fatal("expected down arrow split across frames")
	}
}

func TestLoneEscapeDoesNotStayActive(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "\x1b")
	if in := s.read(now); !in.Active || in.Quit {
		t.Fatalf("Esc press not reported as activity: %+v", in)
	}
	for i := 1; i <= 3; i++ {
		if in := s.read(now.Add(time.Duration(i) * time.Minute)); in.Active {
			t.Fatalf("frame %d without input reported activity", i)
		}
		if len(s.pending) != 0 {
			t.Fatalf("frame %d still holds %q", i, s.pending)
		}
	}

	feed(s, "w")
	if in := s.read(now.Add(4 * time.Minute)); !in.Active || !in.Up {
		t.Fatalf("key after a dropped Esc lost: %+v", in)
	}
}

func TestMalformedMouseReportIsDropped(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[<0;x;1Mr")
	in := s.read(time.Unix(100, 0))
	if in.HasPointer {
		t.Fatalf("malformed report produced a pointer: %+v", in)
	}
	if !in.Reset {
		t.Fatal("bytes after the malformed report were lost")
	}
}

func TestStreamCloseQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("w")))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if in := ReadInput(s); in.Quit {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("expected quit once the reader hit EOF")
}
