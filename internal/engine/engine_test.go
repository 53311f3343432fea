package engine

import (
	"strings"
	"testing"

	"github.com/sflheap/sflheap/internal/command"
)

func mustExec(t *testing.T, e *Engine, line string) Result {
	t.Helper()
	cmd, err := command.Parse(line)
	if err != nil {
		t.Fatalf("parsing %q: %v", line, err)
	}
	return e.Execute(cmd)
}

func TestDumpFormatMatchesSpecLiterally(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 1")
	mustExec(t, e, "MALLOC 8")

	out := mustExec(t, e, "DUMP_MEMORY").Output

	wantPrefix := "+++++DUMP+++++\n"
	wantSuffix := "-----DUMP-----\n"
	if !strings.HasPrefix(out, wantPrefix) {
		t.Errorf("dump missing opening fence, got:\n%s", out)
	}
	if !strings.HasSuffix(out, wantSuffix) {
		t.Errorf("dump missing closing fence, got:\n%s", out)
	}
	for _, want := range []string{
		"Total memory: 512 bytes\n",
		"Total allocated memory: 8 bytes\n",
		"Total free memory: 504 bytes\n",
		"Number of malloc calls: 1\n",
		"Number of fragmentations: 0\n",
		"Allocated blocks : (0x1000 - 8)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q, got:\n%s", want, out)
		}
	}
}

func TestOutOfMemoryIsNonFatalAndSilentlyContinues(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 0")

	res := mustExec(t, e, "MALLOC 65")
	if res.Fatal {
		t.Fatal("Out of memory must not be fatal")
	}
	if strings.TrimSpace(res.Output) != "Out of memory" {
		t.Fatalf("output = %q, want exactly %q", res.Output, "Out of memory")
	}
	if e.Done() {
		t.Fatal("engine must not terminate on Out of memory")
	}
}

func TestInvalidFreeIsNonFatal(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 0")

	res := mustExec(t, e, "FREE 0x9999")
	if res.Fatal {
		t.Fatal("Invalid free must not be fatal")
	}
	if strings.TrimSpace(res.Output) != "Invalid free" {
		t.Fatalf("output = %q, want exactly %q", res.Output, "Invalid free")
	}
}

func TestSegfaultSequenceIsFaultThenDumpThenTerminate(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 0")
	mustExec(t, e, "MALLOC 8")

	res := mustExec(t, e, "READ 0x1000 16")
	if !res.Fatal {
		t.Fatal("expected a fatal segmentation fault")
	}
	lines := strings.SplitN(res.Output, "\n", 2)
	if lines[0] != "Segmentation fault (core dumped)" {
		t.Fatalf("first line = %q, want the exact fault literal", lines[0])
	}
	if !strings.Contains(res.Output, "+++++DUMP+++++") {
		t.Fatal("expected the fault output to include a full dump")
	}
	if !e.Done() {
		t.Fatal("engine must terminate after a fatal fault")
	}
}

func TestDestroyHeapTerminates(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 0")
	mustExec(t, e, "DESTROY_HEAP")
	if !e.Done() {
		t.Fatal("expected engine to be done after DESTROY_HEAP")
	}
}

func TestUnrecognizedCommandIsNoOp(t *testing.T) {
	e := New()
	mustExec(t, e, "INIT_HEAP 0x1000 4 128 0")
	res := mustExec(t, e, "FROBNICATE")
	if res.Output != "" || res.Fatal || e.Done() {
		t.Fatalf("unrecognized command must be a silent no-op, got %+v", res)
	}
}
