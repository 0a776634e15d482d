package question

import "fmt"

// Domain identifies one section of the exam blueprint.
type Domain int

// Exam domains.
const (
	DomainCloudConcepts Domain = iota + 1
	DomainSecurityCompliance
	DomainTechnologyServices
	DomainBillingPricing
)

var domainNames = map[Domain]string{
	DomainCloudConcepts:      "Cloud Concepts",
	DomainSecurityCompliance: "Security & Compliance",
	DomainTechnologyServices: "Cloud Technology & Services",
	DomainBillingPricing:     "Billing, Pricing & Support",
}

// AllDomains lists every known domain in blueprint order.
func AllDomains() []Domain {
	return []Domain{DomainCloudConcepts, DomainSecurityCompliance, DomainTechnologyServices, DomainBillingPricing}
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	_, ok := domainNames[d]
	return ok
}

func (d Domain) String() string {
	if name, ok := domainNames[d]; ok {
		return name
	}
	return fmt.Sprintf("domain(%d)", int(d))
}

// Question represents a bank entry. Answer is server-side only.
type Question struct {
	ID          string            `json:"id"`
	Domain      Domain            `json:"domainId"`
	Prompt      string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      []string          `json:"answer,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
	Source      string            `json:"source,omitempty"`
	MultiAnswer bool              `json:"isMultiAnswer"`
}

// Public strips the fields a learner must not see before answering.
func (q Question) Public() Question {
	q.Answer = nil
	q.Explanation = ""
	return q
}
