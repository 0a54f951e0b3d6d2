package usecase

import (
	"fmt"
	"strings"
	"unicode"

	"pagegen/internal/domain/entity"
)

const fallbackPlain = `export function %[1]s() {
  return (
    <section id="%[2]s" className="py-16 px-4 bg-white">
      <div className="max-w-6xl mx-auto text-center">
        <h2 className="text-3xl font-bold text-gray-900 mb-4">%[3]s</h2>
        <p className="text-lg text-gray-600">This section is being prepared. Check back soon for updated content.</p>
      </div>
    </section>
  );
}`

const fallbackTyped = `interface %[1]sProps {
  className?: string;
}

export default function %[1]s({ className = '' }: %[1]sProps) {
  return (
    <section id="%[2]s" className={'py-16 px-4 bg-white ' + className}>
      <div className="max-w-6xl mx-auto text-center">
        <h2 className="text-3xl font-bold text-gray-900 mb-4">%[3]s</h2>
        <p className="text-lg text-gray-600">This section is being prepared. Check back soon for updated content.</p>
      </div>
    </section>
  );
}`

const simplePlain = `export function %[1]s() {
  return <div className="p-8 text-center"><h2>%[2]s</h2><p>Content coming soon.</p></div>;
}`

const simpleTyped = `export default function %[1]s() {
  return <div className="p-8 text-center"><h2>%[2]s</h2><p>Content coming soon.</p></div>;
}`

// FallbackTemplate is the deterministic stub used when no provider produced
// valid code. The section name is rendered as the heading.
func FallbackTemplate(sectionName string, format entity.OutputFormat) string {
	tmpl := fallbackPlain
	if format == entity.OutputFormatTyped {
		tmpl = fallbackTyped
	}
	return fmt.Sprintf(tmpl, ComponentIdentifier(sectionName), anchorID(sectionName), headingText(sectionName))
}

// SimpleFallbackTemplate is the last resort when even FallbackTemplate fails
// the final validation pass.
func SimpleFallbackTemplate(sectionName string, format entity.OutputFormat) string {
	tmpl := simplePlain
	if format == entity.OutputFormatTyped {
		tmpl = simpleTyped
	}
	return fmt.Sprintf(tmpl, ComponentIdentifier(sectionName), headingText(sectionName))
}

// ComponentIdentifier turns a section name into a valid component name:
// letters and digits only, leading upper case letter.
func ComponentIdentifier(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "Section" + id
	}
	return id
}

func anchorID(name string) string {
	return strings.ToLower(ComponentIdentifier(name))
}

func headingText(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Section"
	}
	r := strings.NewReplacer("<", "", ">", "", "{", "", "}", "")
	return r.Replace(name)
}
