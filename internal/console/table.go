package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/JonMunkholm/students/internal/student"
)

const (
	idWidth   = 5
	nameWidth = 25
	ageWidth  = 5
	ruleWidth = 60
)

// cells measures display width. East Asian ambiguous runes are counted as
// narrow regardless of the terminal locale so output is stable.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RenderTable writes students as a fixed-width table, or a single line when
// there is nothing to show.
func RenderTable(w io.Writer, students []student.Student) {
	if len(students) == 0 {
		fmt.Fprintln(w, "The student list is empty.")
		return
	}

	fmt.Fprintf(w, "%s %s %s %s\n",
		cells.FillRight("ID", idWidth), cells.FillRight("Name", nameWidth), cells.FillRight("Age", ageWidth), "Major")
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	for _, s := range students {
		fmt.Fprintf(w, "%s %s %s %s\n",
			cells.FillRight(s.ID, idWidth),
			cells.FillRight(s.Name, nameWidth),
			cells.FillRight(strconv.Itoa(s.Age), ageWidth),
			s.Major)
	}
}
