package deck

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"nyx-server/internal/infrastructure/icons"
	"nyx-server/internal/infrastructure/metrics"
)

// PhotoFetcher resolves a search query to an embeddable image data URI.
type PhotoFetcher interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
	FetchAsDataURI(ctx context.Context, photoURL string) (string, error)
}

// IconRenderer renders a named icon tinted with a color at a pixel size.
// Defaults to the built-in catalog.
type IconRenderer func(name, color string, size int) string

// Resolver concurrently fetches the visual assets a deck references.
// Resolution never fails: each asset that cannot be fetched is simply
// absent from its slide's record and the renderer skips it.
type Resolver struct {
	photos  PhotoFetcher
	icons   IconRenderer
	timeout time.Duration
	logger  zerolog.Logger
}

func NewResolver(photos PhotoFetcher, timeout time.Duration, logger zerolog.Logger) *Resolver {
	return &Resolver{
		photos:  photos,
		icons:   icons.Render,
		timeout: timeout,
		logger:  logger.With().Str("component", "asset_resolver").Logger(),
	}
}

// Resolve fetches every asset the spec references, all launched at once
// and joined before returning. The result map is keyed by slide index
// and built fresh per call; nothing is cached across invocations.
func (r *Resolver) Resolve(ctx context.Context, spec *PresentationSpec) map[int]*AssetRecord {
	records := make(map[int]*AssetRecord, len(spec.Slides))
	var mu sync.Mutex
	var wg sync.WaitGroup

	record := func(index int) *AssetRecord {
		if records[index] == nil {
			records[index] = &AssetRecord{}
		}
		return records[index]
	}

	for _, slide := range spec.Slides {
		slide := slide

		if slide.ImageQuery != "" && slideNeedsImage(slide) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				uri := r.fetchPhoto(ctx, slide.ImageQuery)
				mu.Lock()
				record(slide.Index).Image = uri
				mu.Unlock()
			}()
		}

		if slide.IconName != "" && slideHasIcon(slide) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				uri := r.renderIcon(spec, slide)
				mu.Lock()
				record(slide.Index).Icon = uri
				mu.Unlock()
			}()
		}
	}

	wg.Wait()
	return records
}

func (r *Resolver) fetchPhoto(ctx context.Context, query string) string {
	fetchCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	photoURL, err := r.photos.SearchPhoto(fetchCtx, query)
	if err != nil {
		metrics.AssetFetchesTotal.WithLabelValues("image", "error").Inc()
		r.logger.Warn().Err(err).Str("query", query).Msg("photo search failed, slide renders without image")
		return ""
	}
	uri, err := r.photos.FetchAsDataURI(fetchCtx, photoURL)
	if err != nil {
		metrics.AssetFetchesTotal.WithLabelValues("image", "error").Inc()
		r.logger.Warn().Err(err).Str("url", photoURL).Msg("photo download failed, slide renders without image")
		return ""
	}
	metrics.AssetFetchesTotal.WithLabelValues("image", "success").Inc()
	return uri
}

func (r *Resolver) renderIcon(spec *PresentationSpec, slide SlideSpec) string {
	color := spec.ColorPalette.Accent
	size := 240
	for _, el := range slide.Elements {
		if el.Kind != KindIcon {
			continue
		}
		if el.Color != "" {
			color = el.Color
		}
		if el.W > 0 {
			size = int(el.W)
		}
		break
	}
	metrics.AssetFetchesTotal.WithLabelValues("icon", "success").Inc()
	return r.icons(slide.IconName, color, size)
}

func slideNeedsImage(slide SlideSpec) bool {
	for _, el := range slide.Elements {
		if el.Kind.NeedsImage() {
			return true
		}
	}
	return false
}

func slideHasIcon(slide SlideSpec) bool {
	for _, el := range slide.Elements {
		if el.Kind == KindIcon {
			return true
		}
	}
	return false
}
