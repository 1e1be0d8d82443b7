package doctor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hay-kot/randoid/pkg/randoid"
)

// sourceSampleSize is how many bytes the source check reads.
const sourceSampleSize = 4096

// SourceCheck reads from the operating system random source.
type SourceCheck struct {
	src io.Reader
}

// NewSourceCheck creates a check of src. A nil src checks the crypto source.
func NewSourceCheck(src io.Reader) *SourceCheck {
	if src == nil {
		src = randoid.CryptoSource()
	}
	return &SourceCheck{src: src}
}

func (c *SourceCheck) Name() string {
	return "Random Source"
}

func (c *SourceCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	buf := make([]byte, sourceSampleSize)
	start := time.Now()
	if _, err := io.ReadFull(c.src, buf); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Read",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}
	elapsed := time.Since(start)

	result.Items = append(result.Items, CheckItem{
		Label:  "Read",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d bytes in %s", len(buf), elapsed.Round(time.Microsecond)),
	})

	// A source stuck on one byte value is broken even if reads succeed.
	if bytes.Count(buf, buf[:1]) == len(buf) {
		result.Items = append(result.Items, CheckItem{
			Label:  "Variation",
			Status: StatusFail,
			Detail: fmt.Sprintf("every byte is 0x%02x", buf[0]),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Variation",
		Status: StatusPass,
	})
	return result
}
