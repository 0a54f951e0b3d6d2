package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Prompt struct {
	ID   string
	Text string
}

const sectionPlainPrompt = `You are an expert React developer building ONE section of a larger landing page.

Rules:
1. VANILLA REACT ONLY: React 18 is loaded from a CDN and available globally as React.
2. NO import statements. Use React.useState and React.useEffect.
3. NO framework components such as Image or Link. Use <img> and <a>.
4. Style with Tailwind CSS utility classes only.
5. Export exactly one component: export function SectionName() { ... }
6. The section must render real, visible content: headings, text, buttons or images.
7. Mobile-first responsive layout, WCAG 2.1 AA accessible markup.
8. Give the root element an id matching the section (e.g. id="pricing") so navigation can scroll to it.

Return ONLY the component code. No explanations and no markdown fences.`

const sectionTypedPrompt = `You are an expert React + TypeScript developer building ONE section of a larger landing page.

Rules:
1. Output a single .tsx component for a Vite or Next.js project.
2. Declare an interface for the props, with sensible defaults for every prop.
3. Import hooks from react when needed: import { useState } from 'react'
4. Export the component as: export default function SectionName(props: SectionNameProps) { ... }
5. Type every event handler (React.MouseEvent, React.ChangeEvent, React.FormEvent).
6. Style with Tailwind CSS utility classes only.
7. The section must render real, visible content: headings, text, buttons or images.
8. Give the root element an id matching the section (e.g. id="pricing").

Return ONLY the TypeScript code. No explanations and no markdown fences.`

const componentPlainPrompt = `You are an expert React developer creating production-ready components.

Generate a React component using:
- VANILLA REACT ONLY (React 18 via CDN, no imports)
- Tailwind CSS for styling
- Functional components with React hooks on the React object (React.useState)
- WCAG 2.1 AA accessibility and a mobile-first responsive layout

Export as: export function ComponentName() { ... }
Use <img> and <a>, never framework Image or Link components.

Return ONLY the component code, no explanations.`

const componentTypedPrompt = `You are an expert React + TypeScript developer.

Generate a SINGLE production-ready TypeScript/TSX component:
- import { useState } from 'react' when hooks are needed
- an interface for the props
- export default function ComponentName(props: ComponentNameProps) { ... }
- typed state (useState<string>('')) and typed event handlers
- Tailwind CSS utility classes, mobile-first responsive layout

Return ONLY the TypeScript code, no explanations.`

var pageTypeContext = map[PageType]string{
	PageTypeProduct: `PAGE TYPE: SaaS product landing page.
Emphasize the value proposition, features and ease of use: clear benefit-driven headline,
benefits grid, pricing tiers (Free, Pro, Enterprise), testimonials with avatars, trial CTA.`,
	PageTypePortfolio: `PAGE TYPE: Portfolio / personal brand.
Showcase work, skills and personality: name and tagline, project cards with images,
skills with proficiency indicators, bio with photo, contact CTA and social links.`,
	PageTypeService: `PAGE TYPE: Agency / service business.
Build trust and drive leads: ROI-focused hero, 3-4 core services, case studies with metrics,
client logos and testimonials, consultation booking CTA.`,
	PageTypeCommerce: `PAGE TYPE: E-commerce product page.
Drive purchases: product hero with imagery, specifications, price and purchase CTA,
star-rated customer reviews, shipping and return guarantees.`,
	PageTypeContent: `PAGE TYPE: Blog / content platform.
Engage readers: featured article hero, article grid with excerpts, categories,
newsletter signup, author bio.`,
}

// SystemPrompt returns the system prompt for a generation call. It is a pure
// lookup over static templates.
func SystemPrompt(pageType PageType, format OutputFormat, multiSection bool) Prompt {
	if !multiSection {
		if format == OutputFormatTyped {
			return Prompt{ID: "component-typed", Text: componentTypedPrompt}
		}
		return Prompt{ID: "component-plain", Text: componentPlainPrompt}
	}

	base, id := sectionPlainPrompt, "section-plain"
	if format == OutputFormatTyped {
		base, id = sectionTypedPrompt, "section-typed"
	}
	pageCtx, ok := pageTypeContext[pageType]
	if !ok {
		pageCtx = pageTypeContext[PageTypeProduct]
		pageType = PageTypeProduct
	}
	return Prompt{
		ID:   id + "-" + string(pageType),
		Text: base + "\n\n" + pageCtx,
	}
}

// WithRequestContext appends caller supplied design tokens and constraints.
func (p Prompt) WithRequestContext(constraints []string, designTokens map[string]any) string {
	if len(constraints) == 0 && len(designTokens) == 0 {
		return p.Text
	}

	var b strings.Builder
	b.WriteString(p.Text)
	if len(designTokens) > 0 {
		if raw, err := json.MarshalIndent(designTokens, "", "  "); err == nil {
			fmt.Fprintf(&b, "\n\nDesign System:\n%s", raw)
		}
	}
	if len(constraints) > 0 {
		b.WriteString("\n\nConstraints:")
		for _, c := range constraints {
			b.WriteString("\n- ")
			b.WriteString(c)
		}
	}
	return b.String()
}
