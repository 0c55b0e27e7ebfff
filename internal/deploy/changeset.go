package deploy

import (
	"bufio"
	"strings"

	"github.com/StormyDevil/azure-communication-services-solution/internal/models"
)

// What-if report lines are prefixed with the operation marker. The three
// markers are mutually exclusive per line.
const (
	markCreate = "+ "
	markModify = "~ "
	markDelete = "- "
)

// ParseChangeSet counts create/modify/delete operations in a textual what-if
// report. Unrelated lines are ignored and a report with zero matches is a
// valid, empty change set; the counts are informational and never gate
// execution.
func ParseChangeSet(report string) models.ChangeSet {
	var cs models.ChangeSet
	sc := bufio.NewScanner(strings.NewReader(report))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, markCreate):
			cs.Create++
		case strings.HasPrefix(line, markModify):
			cs.Modify++
		case strings.HasPrefix(line, markDelete):
			cs.Delete++
		}
	}
	return cs
}
