package model

import "time"

// ExtractionStatus represents the overall outcome of a profile extraction run.
type ExtractionStatus string

const (
	// StatusSuccess means the homepage loaded and most extractors yielded data.
	StatusSuccess ExtractionStatus = "success"
	// StatusPartial means the homepage loaded but extraction came back mostly empty.
	StatusPartial ExtractionStatus = "partial"
	// StatusError means the homepage itself could not be fetched.
	StatusError ExtractionStatus = "error"
)

// PolicyType tags a policy document.
type PolicyType string

const (
	PolicyPrivacy PolicyType = "privacy"
	PolicyReturn  PolicyType = "return"
)

// Policy holds one extracted store policy. At most one per type per profile.
type Policy struct {
	Type    PolicyType `json:"type"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	URL     string     `json:"url,omitempty"`
}

// FAQ is a single question/answer pair from a store's FAQ page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Platform identifies a social network.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformPinterest Platform = "pinterest"
)

// SocialHandle is a social media link found on the storefront.
type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Handle   string   `json:"handle,omitempty"`
}

// ContactInfo aggregates contact details scraped from the site.
// All slices are de-duplicated; any of them may be empty.
type ContactInfo struct {
	Emails    []string `json:"emails"`
	Phones    []string `json:"phones"`
	Addresses []string `json:"addresses"`
}

// LinkCategory classifies an important link.
type LinkCategory string

const (
	LinkOrderTracking LinkCategory = "order tracking"
	LinkContactUs     LinkCategory = "contact us"
	LinkBlog          LinkCategory = "blog"
	LinkSizeGuide     LinkCategory = "size guide"
	LinkShipping      LinkCategory = "shipping"
	LinkReturns       LinkCategory = "returns"
	LinkHelp          LinkCategory = "help"
)

// ImportantLink is a customer-facing link worth surfacing (tracking, help, ...).
type ImportantLink struct {
	Title    string       `json:"title"`
	URL      string       `json:"url"`
	Category LinkCategory `json:"category"`
}

// Profile is the assembled record of everything extracted for one storefront.
// Child collections are owned exclusively by the profile.
type Profile struct {
	ID         string `json:"id,omitempty"`
	WebsiteURL string `json:"website_url"`
	BrandName  string `json:"brand_name,omitempty"`
	AboutBrand string `json:"about_brand,omitempty"`

	Catalog      []Product `json:"product_catalog"`
	HeroProducts []Product `json:"hero_products"`

	Policies       []Policy        `json:"policies"`
	FAQs           []FAQ           `json:"faqs"`
	SocialHandles  []SocialHandle  `json:"social_handles"`
	Contact        ContactInfo     `json:"contact_info"`
	ImportantLinks []ImportantLink `json:"important_links"`

	Status       ExtractionStatus `json:"extraction_status"`
	ErrorMessage string           `json:"error_message,omitempty"`
	ExtractedAt  time.Time        `json:"extracted_at"`
}

// Policy returns the profile's policy of the given type, or nil.
func (p *Profile) Policy(t PolicyType) *Policy {
	for i := range p.Policies {
		if p.Policies[i].Type == t {
			return &p.Policies[i]
		}
	}
	return nil
}

// ProfileSummary is the listing shape for stored profiles.
type ProfileSummary struct {
	ID           string           `json:"id"`
	WebsiteURL   string           `json:"website_url"`
	BrandName    string           `json:"brand_name,omitempty"`
	Status       ExtractionStatus `json:"extraction_status"`
	ProductCount int              `json:"product_count"`
	ExtractedAt  time.Time        `json:"extracted_at"`
}
