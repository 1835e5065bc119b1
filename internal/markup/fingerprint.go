package markup

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Layout carries every layout-relevant parameter that changes how the
// tree must be shaped, not just how it is painted. All fields
// participate in the cache fingerprint.
type Layout struct {
	// TextScale is the ambient text scaling factor.
	TextScale float64
	// Align is the horizontal alignment mode.
	Align string
	// MaxLines bounds the rendered line count; zero means unbounded.
	MaxLines int
	// Overflow selects the overflow mode (clip, ellipsis, wrap).
	Overflow string
	// Direction is the text direction (ltr, rtl).
	Direction string
	// Locale is the BCP 47 locale tag.
	Locale string
	// HeightBehavior carries paragraph height-behavior flags.
	HeightBehavior string
	// LinkAlign is the alignment applied to embedded link content.
	LinkAlign string
}

func (l Layout) fingerprint() string {
	return fmt.Sprintf("%g\x1f%s\x1f%d\x1f%s\x1f%s\x1f%s\x1f%s\x1f%s",
		l.TextScale, l.Align, l.MaxLines, l.Overflow,
		l.Direction, l.Locale, l.HeightBehavior, l.LinkAlign)
}

// Fingerprint builds the composite cache key for one parse call. It is
// derived from the specific values the parser actually consumes: the
// raw text, the base style, every resolved marker delta, the link and
// hover styles, the cursor hint, callback identities, the depth limit,
// the layout parameters, and placeholder identities. An unrelated
// change in the host's wider configuration never shifts the key, while
// value-equal styles from distinct instances always agree.
//
// Callback identity is the one exception to value equality: a
// freshly-allocated closure is indistinguishable from a changed
// callback and invalidates the key. Callers wanting cache stability
// must pass stable callback references.
func Fingerprint(text string, opts Options, layout Layout) string {
	p := opts.provider()
	base := opts.BaseStyle

	parts := make([]string, 0, len(markerKinds)+10)
	parts = append(parts, text, base.Fingerprint())
	for _, kind := range markerKinds {
		parts = append(parts, p.Resolve(kind, base).Fingerprint())
	}
	parts = append(parts,
		p.LinkStyle(base).Fingerprint(),
		p.LinkHoverStyle(base).Fingerprint(),
		string(p.LinkCursor()),
		funcIdentity(p.OnLinkTap()),
		funcIdentity(p.OnLinkHover()),
		strconv.Itoa(opts.maxDepth()),
		layout.fingerprint(),
		placeholderFingerprint(opts.Placeholders),
	)
	return strings.Join(parts, "\x1e")
}

// funcIdentity returns the code pointer of fn in hex, or "0" for nil.
func funcIdentity(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.IsNil() {
		return "0"
	}
	return strconv.FormatUint(uint64(v.Pointer()), 16)
}

// placeholderFingerprint folds the placeholder map into the key.
// Reference payloads (pointers, maps, slices, funcs, channels)
// contribute their identity; plain values contribute their printed
// form. Hosts should pass stable payloads for cache stability.
func placeholderFingerprint(placeholders map[string]any) string {
	if len(placeholders) == 0 {
		return ""
	}
	keys := make([]string, 0, len(placeholders))
	for k := range placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(payloadIdentity(placeholders[k]))
	}
	return sb.String()
}

func payloadIdentity(payload any) string {
	v := reflect.ValueOf(payload)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return "0"
		}
		return strconv.FormatUint(uint64(v.Pointer()), 16)
	default:
		return fmt.Sprintf("%v", payload)
	}
}
