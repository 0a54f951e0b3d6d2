package planner

import "pagegen/internal/domain/entity"

const subjectPlaceholder = "{subject}"

type sectionTemplate struct {
	name   string
	kind   string
	prompt string
}

const footerRequirements = `MUST include: (1) company/logo block with a one-line description, ` +
	`(2) at least 3 columns of links with 4-5 <a> links each, ` +
	`(3) social media icons (Twitter, LinkedIn, GitHub) as clickable links with hover effects, ` +
	`(4) copyright text "© 2024 [Company Name]. All rights reserved." ` +
	`Use a dark background with light text and a multi-column layout that stacks on mobile.`

var sectionTemplates = map[entity.PageType][]sectionTemplate{
	entity.PageTypeProduct: {
		{"Navigation", "navigation", `Create a sticky navigation bar for {subject}. Include a logo, menu items (Features, Pricing, Testimonials, Contact) and a CTA button. Make it responsive with a mobile menu toggle and smooth scroll handlers for the menu items. Modern, clean design with backdrop blur.`},
		{"Hero", "hero", `Create a hero section for {subject}. Include a compelling <h1> headline about the main benefit, a subheadline explaining the value proposition, two CTA buttons (primary and secondary) and a hero image placeholder. Use a gradient background.`},
		{"Features", "features", `Create a features section for {subject}. Display 3-6 feature cards in a grid, each with an emoji icon, an <h3> title and a short description. Use modern cards with hover effects.`},
		{"SocialProof", "social_proof", `Create a testimonials section for {subject}. MUST include: (1) a section title such as "What Our Customers Say", (2) exactly 3 testimonial cards with customer quotes in quotation marks, (3) an avatar image, full name, job title and company on each card, (4) trust indicators like "10,000+ happy users" or a "4.9/5 star rating" with ⭐ stars. Grid layout with hover effects.`},
		{"Pricing", "pricing", `Create a pricing section for {subject}. Display 3 pricing tiers (Starter, Pro, Enterprise) as cards. Each tier shows its price, a feature list and a CTA button. Highlight the recommended tier.`},
		{"CTA", "cta", `Create a call-to-action section for {subject}. Gradient background, an urgent <h2> headline, a subheadline explaining the benefit and a prominent CTA button. Add a social proof line like "Join 10,000+ teams".`},
		{"Footer", "footer", `Create a complete footer for {subject}. ` + footerRequirements},
	},
	entity.PageTypePortfolio: {
		{"Navigation", "navigation", `Create a sticky navigation bar for the portfolio of {subject}. Include a name/logo and menu items (Work, About, Skills, Contact) with smooth scroll handlers. Minimal, elegant design.`},
		{"Hero", "hero", `Create a portfolio hero section for {subject}. Include the name in an <h1>, a tagline or role, a short description, a CTA button to view work and a professional photo placeholder.`},
		{"Projects", "projects", `Create a projects showcase for {subject}. Display 3-4 project cards with images, titles, descriptions and "View Project" links in a grid with hover effects.`},
		{"Skills", "skills", `Create a skills section for {subject}. Group skills into categories with proficiency bars or percentages and an <h2> section title.`},
		{"About", "about", `Create an about section for {subject} with a bio paragraph, experience highlights, education or awards and a photo.`},
		{"Contact", "contact", `Create a contact section for {subject} with an email link, social links and a contact form with labelled inputs and a submit button.`},
	},
	entity.PageTypeService: {
		{"Navigation", "navigation", `Create a sticky navigation bar for {subject}. Include a logo, menu items (Services, Work, About, Contact) and a CTA button. Professional design.`},
		{"Hero", "hero", `Create a hero section for {subject}. Strong value proposition, a results-focused <h1> headline and a CTA button. Bold, confident design.`},
		{"Services", "services", `Create a services section for {subject}. Display 3-4 core services with icons, titles and descriptions in a grid.`},
		{"CaseStudies", "case_studies", `Create a case studies section for {subject}. Show 2-3 client success stories with metrics (e.g. "300% increase"), company logos and short descriptions.`},
		{"Clients", "clients", `Create a clients section for {subject} with a heading and a grid of client logos (images with alt text) plus one short testimonial quote.`},
		{"CTA", "cta", `Create a call-to-action section for {subject} inviting visitors to schedule a consultation, with a strong headline and a button or short form.`},
		{"Footer", "footer", `Create a complete footer for {subject}. Also list contact information (email, phone, address). ` + footerRequirements},
	},
	entity.PageTypeCommerce: {
		{"Navigation", "navigation", `Create a sticky store navigation bar for {subject}. Include a logo, category links, a search input and a cart button with an item count badge.`},
		{"Hero", "hero", `Create a product hero section for {subject}. Large product image, an <h1> product name, a short pitch, the price and an "Add to Cart" button.`},
		{"ProductDetails", "product_details", `Create a product details section for {subject}. Show key features as a list, a specifications table and an image gallery.`},
		{"Reviews", "reviews", `Create a customer reviews section for {subject}. Show an average star rating (⭐), the review count and 3 review cards with quotes, reviewer names and ratings.`},
		{"Pricing", "pricing", `Create a purchase options section for {subject}. Show 2-3 bundles or variants as cards with price, savings badge and a buy button.`},
		{"Guarantees", "guarantees", `Create a guarantees section for {subject} with free shipping, 30-day returns and secure checkout badges, each with an icon, title and one-line description.`},
		{"Footer", "footer", `Create a complete store footer for {subject}. ` + footerRequirements},
	},
	entity.PageTypeContent: {
		{"Navigation", "navigation", `Create a sticky navigation bar for {subject}. Include a logo, category links, a search input and a subscribe button.`},
		{"FeaturedArticle", "featured_article", `Create a featured article hero for {subject}. Cover image, category tag, an <h1> title, excerpt, author and date, and a "Read more" link.`},
		{"ArticleGrid", "article_grid", `Create an article grid for {subject}. Show 6 article cards with images, titles, excerpts and read-time labels.`},
		{"Categories", "categories", `Create a categories section for {subject} listing 6-8 topic tags as pill-shaped links with post counts.`},
		{"Newsletter", "newsletter", `Create a newsletter signup section for {subject} with a headline, a short pitch, a labelled email input and a subscribe button.`},
		{"AuthorBio", "author", `Create an author bio section for {subject} with an avatar, name, short bio paragraph and social links.`},
		{"Footer", "footer", `Create a complete footer for {subject}. ` + footerRequirements},
	},
}
