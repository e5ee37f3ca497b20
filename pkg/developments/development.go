// Package developments defines the domain model for Build to Rent (BTR)
// developments: the canonical record produced by discovery, the raw
// observations it is resolved from, the stored listing shape read from the
// directory database, and the closed vocabularies shared by both paths.
package developments

// Development is the canonical record for one real-world BTR development,
// resolved from one or more observations.
type Development struct {
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Type           DevelopmentType `json:"development_type"`
	OperatorName   string          `json:"operator_name,omitempty"`
	AssetOwnerName string          `json:"asset_owner_name,omitempty"`
	Area           string          `json:"area,omitempty"`
	Region         Region          `json:"region,omitempty"`
	Postcode       string          `json:"postcode,omitempty"`
	NumberOfUnits  *int            `json:"number_of_units,omitempty"`
	Status         Status          `json:"status,omitempty"`
	CompletionDate string          `json:"completion_date,omitempty"`
	Description    string          `json:"description,omitempty"`
	WebsiteURL     string          `json:"website_url,omitempty"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`

	// SourceURLs lists every distinct provenance URL in discovery order.
	SourceURLs []string `json:"source_urls"`

	ConfidenceScore float64    `json:"confidence_score"`
	Confidence      Confidence `json:"confidence"`

	// IsNew reports whether the development was absent from the directory
	// database at the time of the last check.
	IsNew bool     `json:"is_new"`
	Notes []string `json:"notes,omitempty"`
}

// Observation is one raw, partial description of a development as extracted
// from a single web page. Every field other than Name and SourceURL is
// optional; numeric fields are kept as strings until merge time because the
// extraction service does not guarantee types.
type Observation struct {
	Name            string  `json:"name"`
	OperatorName    *string `json:"operator_name,omitempty"`
	AssetOwnerName  *string `json:"asset_owner_name,omitempty"`
	Area            *string `json:"area,omitempty"`
	Region          *string `json:"region,omitempty"`
	Postcode        *string `json:"postcode,omitempty"`
	NumberOfUnits   *string `json:"number_of_units,omitempty"`
	Status          *string `json:"status,omitempty"`
	CompletionDate  *string `json:"completion_date,omitempty"`
	Description     *string `json:"description,omitempty"`
	WebsiteURL      *string `json:"website_url,omitempty"`
	DevelopmentType *string `json:"development_type,omitempty"`
	SourceURL       string  `json:"source_url"`
}

// Organization is an operator or asset owner attached to a stored listing.
type Organization struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Website string `json:"website,omitempty"`
}

// Listing is a development as stored in the directory database. It is owned
// by the database and read-only from the engine's perspective.
type Listing struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	NumberOfUnits  *int          `json:"number_of_units,omitempty"`
	Status         string        `json:"status,omitempty"`
	Type           string        `json:"development_type,omitempty"`
	Region         string        `json:"region,omitempty"`
	Area           string        `json:"area,omitempty"`
	Postcode       string        `json:"postcode,omitempty"`
	WebsiteURL     string        `json:"website_url,omitempty"`
	Description    string        `json:"description,omitempty"`
	CompletionDate string        `json:"completion_date,omitempty"`
	Latitude       *float64      `json:"latitude,omitempty"`
	Longitude      *float64      `json:"longitude,omitempty"`
	Operator       *Organization `json:"operator,omitempty"`
	AssetOwner     *Organization `json:"asset_owner,omitempty"`
}

// OperatorName returns the stored operator name, or "" when the listing has
// no operator attached.
func (l *Listing) OperatorName() string {
	if l.Operator == nil {
		return ""
	}
	return l.Operator.Name
}

// AssetOwnerName returns the stored asset owner name, or "" when the listing
// has no asset owner attached.
func (l *Listing) AssetOwnerName() string {
	if l.AssetOwner == nil {
		return ""
	}
	return l.AssetOwner.Name
}
