package ringdeque

import (
	"fmt"
	"strings"
)

// String dumps the whole buffer, one slot per line in physical order, for
// debugging. The front slot is marked "(head)" and the back slot "(tail)".
// Vacant slots print as the zero value. The format is not stable. A nil
// Deque dumps as the empty string.
func (d *Deque[T]) String() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	back := -1
	if d.size > 0 {
		back = d.wrap(d.tail - 1)
	}
	for i, t := range d.buf {
		fmt.Fprint(&sb, t)
		switch {
		case d.size > 0 && i == d.head:
			sb.WriteString("  (head)")
		case i == back:
			sb.WriteString("  (tail)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
