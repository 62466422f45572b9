package client

import (
	"io"
	"sync"
	"time"
)

// byteLimiter is a token-bucket limiter for portfolio downloads, shared by
// all gallery workers.
type byteLimiter struct {
	mu     sync.Mutex
	rate   int64 // bytes per second
	tokens float64
	last   time.Time
}

var (
	galleryLimiter   *byteLimiter
	galleryLimiterMu sync.RWMutex
)

// SetGalleryRateLimit caps the combined download speed of gallery pulls.
// Zero or negative removes the cap.
func SetGalleryRateLimit(bytesPerSecond int64) {
	galleryLimiterMu.Lock()
	defer galleryLimiterMu.Unlock()
	if bytesPerSecond <= 0 {
		galleryLimiter = nil
		return
	}
	galleryLimiter = &byteLimiter{
		rate:   bytesPerSecond,
		tokens: float64(bytesPerSecond),
		last:   time.Now(),
	}
}

type limitedReader struct {
	under io.Reader
	lim   *byteLimiter
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	lr.lim.mu.Lock()
	now := time.Now()
	if elapsed := now.Sub(lr.lim.last).Seconds(); elapsed > 0 {
		lr.lim.tokens += elapsed * float64(lr.lim.rate)
		if max := float64(lr.lim.rate); lr.lim.tokens > max {
			lr.lim.tokens = max
		}
		lr.lim.last = now
	}
	allowed := int(lr.lim.tokens)
	if allowed <= 0 {
		// Bucket is empty; wait one refill tick and try again.
		lr.lim.mu.Unlock()
		time.Sleep(time.Duration(float64(time.Second) / float64(lr.lim.rate)))
		return lr.Read(p)
	}
	if len(p) > allowed {
		p = p[:allowed]
	}
	lr.lim.mu.Unlock()

	n, err := lr.under.Read(p)
	if n > 0 {
		lr.lim.mu.Lock()
		lr.lim.tokens -= float64(n)
		lr.lim.mu.Unlock()
	}
	return n, err
}

// wrapWithGalleryRateLimit applies the global gallery cap, if one is set.
func wrapWithGalleryRateLimit(r io.Reader) io.Reader {
	galleryLimiterMu.RLock()
	lim := galleryLimiter
	galleryLimiterMu.RUnlock()
	if lim == nil {
		return r
	}
	return &limitedReader{under: r, lim: lim}
}
