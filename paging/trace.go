package paging

import (
	"bufio"
	"fmt"
	"io"
)

const traceRule = "-------------------------------------"

// WriteTrace prints a run in the classic textbook layout: one line per
// reference with the page, an F on faults and the resident frames.
func WriteTrace(w io.Writer, result *SimulationResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Replacement Policy = %s\n%s\n", result.Policy, traceRule)
	for _, step := range result.Steps {
		fmt.Fprintf(bw, "%02d ", step.Page)
		if step.Fault {
			bw.WriteString("F ")
		}
		for _, p := range step.Frames {
			fmt.Fprintf(bw, "%02d ", p)
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "%s\nNumber of page faults = %d\n", traceRule, result.Faults)

	return bw.Flush()
}

// WriteInvalidPolicy prints the message shown for an unknown policy name
func WriteInvalidPolicy(w io.Writer) error {
	_, err := io.WriteString(w, "Invalid algorithm!\n")
	return err
}

// WriteComparison prints one summary line per policy
func WriteComparison(w io.Writer, results []*SimulationResult) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		fmt.Fprintf(bw, "%-8s frames=%d faults=%d hits=%d fault_rate=%.3f\n",
			r.Policy, r.FrameSize, r.Faults, r.Hits(), r.FaultRate())
	}
	return bw.Flush()
}
