package octree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/vola/attr"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/internal/options"
	"github.com/arloliu/vola/section"
)

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*Builder]

// WithAttributes declares per-point attribute vectors of length fields packed
// as kind. Without it the tree carries no payloads.
func WithAttributes(length int, kind format.AttributeKind) BuilderOption {
	return options.New(func(b *Builder) error {
		p, err := attr.NewPacker(length, kind)
		if err != nil {
			return err
		}
		b.packer = p

		return nil
	})
}

// WithCRS sets the coordinate reference tag stored in the document.
func WithCRS(crs string) BuilderOption {
	return options.New(func(b *Builder) error {
		if len(crs) > section.CRSSize {
			return fmt.Errorf("%w: %q is %d bytes, max %d", errs.ErrCRSTooLong, crs, len(crs), section.CRSSize)
		}
		b.crs = crs

		return nil
	})
}

// WithDensity selects the layout the document is meant to be serialized in.
// Dense documents are limited to section.MaxDenseDepth.
func WithDensity(density format.Density) BuilderOption {
	return options.New(func(b *Builder) error {
		switch density {
		case format.DensitySparse, format.DensityDense:
			b.density = density
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidDensity, density)
		}
	})
}

// WithSizeHint preallocates room for about n occupied cells.
func WithSizeHint(n int) BuilderOption {
	return options.NoError(func(b *Builder) {
		if n > 0 {
			b.sizeHint = n
		}
	})
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *zap.Logger) BuilderOption {
	return options.NoError(func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	})
}
