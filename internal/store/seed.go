package store

import (
	"context"
	"fmt"

	"github.com/skriptnetworks/siteapi/internal/model"
)

// SampleArticles is the demo content for a fresh install.
var SampleArticles = []model.InsertArticle{
	{
		Title:     "The Future of Cybersecurity in Malaysian Businesses",
		Excerpt:   "Exploring emerging cybersecurity threats and how Malaysian businesses can stay protected in 2024.",
		Content:   "As cyber threats continue to evolve, Malaysian businesses must adapt their security strategies to stay protected. This guide covers the latest trends, threats, and best practices: ransomware resilience, cloud security, remote work hardening, multi-factor authentication, and incident response planning.",
		Category:  "Cybersecurity",
		Tags:      []string{"cybersecurity", "malaysia", "business", "security"},
		Published: true,
	},
	{
		Title:     "Smart Home Automation: A Complete Guide for Malaysian Homes",
		Excerpt:   "Transform your home with intelligent automation systems designed for tropical climates and local preferences.",
		Content:   "Smart home technology has revolutionized how we interact with our living spaces. In Malaysia's climate, automated cooling, humidity-aware sensors and intelligent scheduling can cut electricity bills by 20-30%, while smart locks and CCTV integration keep homes secure from anywhere.",
		Category:  "Smart Home",
		Tags:      []string{"smart-home", "automation", "iot"},
		Published: true,
	},
	{
		Title:     "Choosing the Right IT Infrastructure for Your SME",
		Excerpt:   "A practical look at on-premise, cloud and hybrid setups for small and medium enterprises.",
		Content:   "Draft notes on sizing servers, networking and backup strategy for SMEs. Covers cost comparison between on-premise and cloud hosting, when a hybrid setup pays off, and the maintenance commitments each option brings.",
		Category:  "IT Consultancy",
		Tags:      []string{"infrastructure", "sme"},
		Published: false,
	},
}

// SeedIfEmpty inserts the sample articles when the table has none.
// Safe to call on every boot.
func SeedIfEmpty(ctx context.Context, s Storage) error {
	existing, err := s.Articles(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing articles: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, in := range SampleArticles {
		if _, err := s.CreateArticle(ctx, in); err != nil {
			return fmt.Errorf("seeding article %q: %w", in.Title, err)
		}
	}

	return nil
}
