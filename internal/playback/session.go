package playback

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	siteID = uuid.NewString()
	passes uint64
)

// PassID names one playback pass in logs: the process site plus a counter.
type PassID struct {
	Site string
	Seq  uint64
}

func nextPass() PassID {
	return PassID{Site: siteID, Seq: atomic.AddUint64(&passes, 1)}
}

func (p PassID) String() string {
	return fmt.Sprintf("%.8s-%d", p.Site, p.Seq)
}
