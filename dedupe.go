package regulator

import (
	"runtime/debug"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// MaxInMemoryDedupeSize (default : 100 MB)
var MaxInMemoryDedupeSize = 100 * 1024 * 1024

// DedupeBackend stores generated candidates exactly once.
type DedupeBackend interface {
	// Upsert add/update key to backend/database
	Upsert(elem string)
	// Execute given callback on each element while iterating
	IterCallback(callback func(elem string))
	// Cleanup cleans any residuals after deduping
	Cleanup()
}

// NewDedupeBackend picks an in-memory map or a disk-backed hybrid store
// depending on the expected output size in bytes.
func NewDedupeBackend(byteLen int) DedupeBackend {
	if byteLen <= MaxInMemoryDedupeSize {
		return newMapBackend()
	}
	gologger.Info().Msgf("expected output exceeds %d bytes, deduplicating on disk", MaxInMemoryDedupeSize)
	return newHybridBackend()
}

type mapBackend struct {
	storage map[string]struct{}
}

func newMapBackend() *mapBackend {
	return &mapBackend{storage: map[string]struct{}{}}
}

func (m *mapBackend) Upsert(elem string) {
	m.storage[elem] = struct{}{}
}

func (m *mapBackend) IterCallback(callback func(elem string)) {
	for k := range m.storage {
		callback(k)
	}
}

func (m *mapBackend) Cleanup() {
	m.storage = nil
	// force GC to return the map's memory in one go instead of in chunks
	debug.FreeOSMemory()
}

type hybridBackend struct {
	storage *hybrid.HybridMap
}

func newHybridBackend() *hybridBackend {
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		gologger.Fatal().Msgf("failed to create temp dir for dedupe got: %v", err)
	}
	return &hybridBackend{storage: db}
}

func (h *hybridBackend) Upsert(elem string) {
	if err := h.storage.Set(elem, nil); err != nil {
		gologger.Error().Msgf("dedupe: hybrid: got %v while writing %v", err, elem)
	}
}

func (h *hybridBackend) IterCallback(callback func(elem string)) {
	h.storage.Scan(func(k, _ []byte) error {
		callback(string(k))
		return nil
	})
}

func (h *hybridBackend) Cleanup() {
	_ = h.storage.Close()
}
