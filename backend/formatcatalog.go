package backend

import (
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
)

var ErrUnknownFormat = errors.New("unknown media format")

// DemuxerLister reports the container formats the playback engine can open.
type DemuxerLister interface {
	SupportedDemuxers() ([]string, error)
}

// A media file format the playback engine can decode.
type Format struct {
	MIMEType  string
	Extension string
	IsVideo   bool
}

// Demuxer names (as listed by libavformat) that open each file extension,
// where the name differs from the extension itself.
var extensionDemuxers = map[string][]string{
	"mp4":  {"mov", "mp4"},
	"m4v":  {"mov", "mp4"},
	"m4a":  {"mov", "m4a"},
	"3gp":  {"mov", "3gp"},
	"mov":  {"mov"},
	"mkv":  {"matroska"},
	"webm": {"matroska", "webm"},
	"wmv":  {"asf"},
	"mpg":  {"mpeg", "mpegps"},
	"aiff": {"aiff"},
	"mid":  {"midi", "smf"},
}

// FormatCatalog is the list of decodable formats used to filter the
// file chooser. It is computed on first use and never refreshed.
type FormatCatalog struct {
	lister DemuxerLister

	once    sync.Once
	formats []Format
}

func NewFormatCatalog(lister DemuxerLister) *FormatCatalog {
	return &FormatCatalog{lister: lister}
}

// Formats returns the decodable formats, sorted by MIME type.
func (c *FormatCatalog) Formats() []Format {
	c.once.Do(func() {
		var demuxers []string
		if c.lister != nil {
			d, err := c.lister.SupportedDemuxers()
			if err != nil {
				log.Printf("failed to query supported demuxers: %v", err)
			}
			demuxers = d
		}
		c.formats = buildFormats(demuxers)
		log.Printf("%d decodable media formats", len(c.formats))
	})
	return c.formats
}

// MIMETypes returns the distinct MIME types of the decodable formats.
func (c *FormatCatalog) MIMETypes() []string {
	formats := c.Formats()
	mimes := make([]string, 0, len(formats))
	for _, f := range formats {
		mimes = append(mimes, f.MIMEType)
	}
	return slices.Compact(mimes)
}

// Extensions returns the file extensions of the decodable formats, with leading dot.
func (c *FormatCatalog) Extensions() []string {
	formats := c.Formats()
	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, "."+f.Extension)
	}
	slices.Sort(exts)
	return slices.Compact(exts)
}

// Sniff detects the format of a local file from its content.
func Sniff(path string) (Format, error) {
	t, err := filetype.MatchFile(path)
	if err != nil {
		return Format{}, err
	}
	if t == filetype.Unknown {
		return Format{}, ErrUnknownFormat
	}
	_, isVideo := matchers.Video[t]
	return Format{MIMEType: t.MIME.Value, Extension: t.Extension, IsVideo: isVideo}, nil
}

func buildFormats(demuxers []string) []Format {
	available := make(map[string]bool)
	for _, d := range demuxers {
		// entries may name several aliases, e.g. "mov,mp4,m4a,3gp,3g2,mj2"
		for _, name := range strings.Split(d, ",") {
			available[strings.TrimSpace(name)] = true
		}
	}
	canOpen := func(t types.Type) bool {
		if len(available) == 0 {
			return true
		}
		if available[t.Extension] {
			return true
		}
		for _, name := range extensionDemuxers[t.Extension] {
			if available[name] {
				return true
			}
		}
		return false
	}

	var formats []Format
	add := func(m matchers.Map, isVideo bool) {
		for t := range m {
			if canOpen(t) {
				formats = append(formats, Format{MIMEType: t.MIME.Value, Extension: t.Extension, IsVideo: isVideo})
			}
		}
	}
	add(matchers.Video, true)
	add(matchers.Audio, false)

	slices.SortFunc(formats, func(a, b Format) int {
		if c := strings.Compare(a.MIMEType, b.MIMEType); c != 0 {
			return c
		}
		return strings.Compare(a.Extension, b.Extension)
	})
	return formats
}
