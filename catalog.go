package osm2net

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrWayTypeNotActivated = errors.New("way type is not activated")
	ErrUnknownWayType      = errors.New("way type has no defaults and no fallback is configured")
)

type AttributeTemplateID int

// AttributeTemplate is a bundle of defaults shared by every link segment of the same classification.
// Derived templates are the same bundle with different default mode set
type AttributeTemplate struct {
	ID                 AttributeTemplateID
	Key                string
	LinkClass          LinkClass
	LinkType           LinkType
	LinkConnectionType LinkConnectionType
	// Vehicles per hour per lane
	CapacityPerLane float64
	// Vehicles per kilometer per lane
	MaxDensityPerLane float64
	DefaultModes      ModeSet
	DefaultLanes      int
	DefaultSpeedKmh   float64
	Oneway            bool
	// Set for derived templates only
	Base    *AttributeTemplate
	Added   ModeSet
	Removed ModeSet
}

// SpeedCap returns maximum speed of the mode on links of this template
func (template *AttributeTemplate) SpeedCap(mode ModeType) float64 {
	modeMax, ok := maxSpeedByMode[mode]
	if !ok {
		return template.DefaultSpeedKmh
	}
	return math.Min(modeMax, template.DefaultSpeedKmh)
}

// DefaultSpeedFor returns the fastest speed cap among given modes. Template default speed is used for empty set
func (template *AttributeTemplate) DefaultSpeedFor(modes ModeSet) float64 {
	if modes.IsEmpty() {
		return template.DefaultSpeedKmh
	}
	speed := 0.0
	for _, mode := range modes.Modes() {
		speed = math.Max(speed, template.SpeedCap(mode))
	}
	return speed
}

// Root returns the classification template the derived one originates from
func (template *AttributeTemplate) Root() *AttributeTemplate {
	root := template
	for root.Base != nil {
		root = root.Base
	}
	return root
}

func (template *AttributeTemplate) IsDerived() bool {
	return template.Base != nil
}

type derivedKey struct {
	base    AttributeTemplateID
	added   ModeSet
	removed ModeSet
}

// Catalog is a lazy registry of attribute templates
type Catalog struct {
	settings  *Settings
	byKey     map[string]*AttributeTemplate
	derived   map[derivedKey]*AttributeTemplate
	templates []*AttributeTemplate
}

func NewCatalog(settings *Settings) *Catalog {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Catalog{
		settings:  settings,
		byKey:     make(map[string]*AttributeTemplate),
		derived:   make(map[derivedKey]*AttributeTemplate),
		templates: make([]*AttributeTemplate, 0),
	}
}

// GetOrCreateTemplate returns template for classification key (e.g. `highway:primary`). Aliases share single template
func (catalog *Catalog) GetOrCreateTemplate(key string) (*AttributeTemplate, error) {
	canonical := canonicalWayType(key)
	if template, ok := catalog.byKey[canonical]; ok {
		return template, nil
	}
	if !catalog.settings.CheckWayType(key) && !catalog.settings.CheckWayType(canonical) {
		return nil, errors.Wrapf(ErrWayTypeNotActivated, "way type '%s'", key)
	}
	defaults, ok := lookupWayTypeDefaults(canonical)
	if !ok {
		if catalog.settings.FallbackWayType == "" {
			return nil, errors.Wrapf(ErrUnknownWayType, "way type '%s'", key)
		}
		defaults, ok = lookupWayTypeDefaults(catalog.settings.FallbackWayType)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownWayType, "fallback way type '%s'", catalog.settings.FallbackWayType)
		}
	}
	template := &AttributeTemplate{
		ID:                 AttributeTemplateID(len(catalog.templates)),
		Key:                canonical,
		LinkClass:          defaults.linkClass,
		LinkType:           defaults.linkType,
		LinkConnectionType: defaults.linkConnectionType,
		CapacityPerLane:    defaults.capacity,
		MaxDensityPerLane:  defaults.maxDensity,
		DefaultModes:       defaults.modes,
		DefaultLanes:       defaults.lanes,
		DefaultSpeedKmh:    defaults.speed,
		Oneway:             defaults.oneway,
	}
	override, ok := catalog.settings.Overrides[canonical]
	if !ok {
		override, ok = catalog.settings.Overrides[key]
	}
	if ok {
		if override.Capacity > 0 {
			template.CapacityPerLane = override.Capacity
		}
		if override.MaxDensity > 0 {
			template.MaxDensityPerLane = override.MaxDensity
		}
	}
	catalog.byKey[canonical] = template
	catalog.templates = append(catalog.templates, template)
	return template, nil
}

// GetOrCreateDerived returns template which differs from base by default modes only.
// Repeated requests with the same (base, added, removed) return the very same template
func (catalog *Catalog) GetOrCreateDerived(base *AttributeTemplate, added, removed ModeSet) *AttributeTemplate {
	if added.IsEmpty() && removed.IsEmpty() {
		return base
	}
	key := derivedKey{base: base.ID, added: added, removed: removed}
	if template, ok := catalog.derived[key]; ok {
		return template
	}
	template := *base
	template.ID = AttributeTemplateID(len(catalog.templates))
	template.Base = base
	template.Added = added
	template.Removed = removed
	template.DefaultModes = base.DefaultModes.Union(added).Minus(removed)
	derived := &template
	catalog.derived[key] = derived
	catalog.templates = append(catalog.templates, derived)
	return derived
}

// TemplateForModes returns base template if modes match its defaults and derived one otherwise
func (catalog *Catalog) TemplateForModes(base *AttributeTemplate, modes ModeSet) *AttributeTemplate {
	root := base.Root()
	return catalog.GetOrCreateDerived(root, modes.Minus(root.DefaultModes), root.DefaultModes.Minus(modes))
}

// Templates returns every template created so far, ordered by ID
func (catalog *Catalog) Templates() []*AttributeTemplate {
	return catalog.templates
}

func (catalog *Catalog) Settings() *Settings {
	return catalog.settings
}
