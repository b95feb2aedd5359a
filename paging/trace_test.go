package paging

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteTrace(t *testing.T) {
	result := mustRun(t, PolicyFIFO, 3, textbookRefs)

	var buf bytes.Buffer
	if err := WriteTrace(&buf, result); err != nil {
		t.Fatalf("WriteTrace failed: %v", err)
	}

	expected := `Replacement Policy = FIFO
-------------------------------------
07 F 07 
00 F 07 00 
01 F 07 00 01 
02 F 02 00 01 
00 02 00 01 
03 F 02 03 01 
00 F 02 03 00 
04 F 04 03 00 
02 F 04 02 00 
03 F 04 02 03 
00 F 00 02 03 
03 00 02 03 
02 00 02 03 
-------------------------------------
Number of page faults = 10
`
	if buf.String() != expected {
		t.Errorf("Unexpected trace:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestWriteTraceEmpty(t *testing.T) {
	result := mustRun(t, PolicyClock, 2, nil)

	var buf bytes.Buffer
	if err := WriteTrace(&buf, result); err != nil {
		t.Fatalf("WriteTrace failed: %v", err)
	}

	expected := "Replacement Policy = CLOCK\n" + traceRule + "\n" + traceRule + "\nNumber of page faults = 0\n"
	if buf.String() != expected {
		t.Errorf("Unexpected trace:\n%q\nwant:\n%q", buf.String(), expected)
	}
}

func TestWriteTraceWidePages(t *testing.T) {
	result := mustRun(t, PolicyLRU, 1, []PageID{123})

	var buf bytes.Buffer
	WriteTrace(&buf, result)

	if !strings.Contains(buf.String(), "123 F 123 \n") {
		t.Errorf("Expected unpadded three digit page, got:\n%s", buf.String())
	}
}

func TestWriteInvalidPolicy(t *testing.T) {
	var buf bytes.Buffer
	WriteInvalidPolicy(&buf)
	if buf.String() != "Invalid algorithm!\n" {
		t.Errorf("Unexpected message %q", buf.String())
	}
}

func TestWriteComparison(t *testing.T) {
	results := []*SimulationResult{
		mustRun(t, PolicyOptimal, 3, textbookRefs),
		mustRun(t, PolicyFIFO, 3, textbookRefs),
	}

	var buf bytes.Buffer
	if err := WriteComparison(&buf, results); err != nil {
		t.Fatalf("WriteComparison failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "OPTIMAL") || !strings.Contains(lines[0], "faults=7") {
		t.Errorf("Unexpected OPTIMAL line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "FIFO") || !strings.Contains(lines[1], "faults=10") {
		t.Errorf("Unexpected FIFO line %q", lines[1])
	}
}
