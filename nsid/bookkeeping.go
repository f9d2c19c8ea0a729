package nsid

import (
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/robert-malhotra/go-nsid/hstore"
)

// Version is written as the nsid_version book-keeping attribute.
const Version = "0.1.0"

// Book-keeping attribute names.
const (
	AttrNSIDVersion = "nsid_version"
	AttrTimestamp   = "timestamp"
	AttrMachineID   = "machine_id"
	AttrPlatform    = "platform"
	AttrUUID        = "uuid"
)

// TimestampLayout formats the timestamp attribute.
const TimestampLayout = "2006_01_02-15_04_05"

// BookKeeping returns the book-keeping attributes stamped with clock.
func BookKeeping(clock clockwork.Clock) map[string]any {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return map[string]any{
		AttrNSIDVersion: Version,
		AttrTimestamp:   clock.Now().UTC().Format(TimestampLayout),
		AttrMachineID:   host,
		AttrPlatform:    runtime.GOOS + "/" + runtime.GOARCH,
		AttrUUID:        uuid.NewString(),
	}
}

// WriteBookKeeping stamps n with the book-keeping attributes.
func WriteBookKeeping(n hstore.Node, clock clockwork.Clock) error {
	return hstore.SetAttrs(n, BookKeeping(clock))
}
