// =============================================================================
// Transcript Converter - XML Writer Module
// =============================================================================
//
// This module renders a transcript report as an XML document.
//
// XML STRUCTURE:
//
//   <transcript>                                <!-- Root element -->
//     <information>                             <!-- Student record -->
//       <field name="firstName">Ada</field>
//     </information>
//     <sections>
//       <section n="1" id="10">                 <!-- Report order -->
//         <expression>1(A)</expression>
//         <name>Algebra</name>
//         <teacher id="7">...</teacher>
//         <assignments>
//           <assignment n="1" id="100">
//             <name>HW1</name>
//             <category>Homework</category>
//             <score>9</score>
//             <terms><term>S1</term><term>Q1</term></terms>
//           </assignment>
//         </assignments>
//         <finalGrades>
//           <finalGrade term="1"><grade>A</grade></finalGrade>
//         </finalGrades>
//         <citizenship><grade term="1">E</grade></citizenship>
//       </section>
//     </sections>
//     <attendances>
//       <attendance n="1"><code>P</code>...</attendance>
//     </attendances>
//   </transcript>
//
// A disabled school renders <notice><title/><message/></notice> in place of
// <sections> and <attendances>.
//
// Empty optional values are omitted. Elements whose source was missing
// entirely (no teacher, no assignments) are omitted as well.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// RootElement is the name of the root element.
	// Default: "transcript"
	RootElement string

	// RootAttributes are additional attributes for the root element.
	// Example: {"xmlns": "http://example.com/schema"}
	RootAttributes map[string]string

	// IndexAttribute is the attribute carrying 1-based positions.
	// Default: "n"
	IndexAttribute string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		RootElement:           "transcript",
		RootAttributes:        make(map[string]string),
		IndexAttribute:        "n",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from a report.
//
// PARAMETERS:
//   - report: The transformed report.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(report *types.Report) ([]byte, error) {
	return GenerateWithOptions(report, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
func GenerateWithOptions(report *types.Report, options GenerateOptions) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("failed to generate XML: nil report")
	}

	root, err := buildDocument(report, options)
	if err != nil {
		return nil, fmt.Errorf("failed to build XML: %w", err)
	}

	var buffer bytes.Buffer
	if options.IncludeXMLDeclaration {
		buffer.WriteString(xml.Header)
	}
	writeElement(&buffer, root, options.Indent, 0)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// buildDocument constructs the XML document structure.
func buildDocument(report *types.Report, options GenerateOptions) (XMLElement, error) {
	root := XMLElement{XMLName: xml.Name{Local: options.RootElement}}

	for _, key := range slices.Sorted(maps.Keys(options.RootAttributes)) {
		root.Attributes = append(root.Attributes, attr(key, options.RootAttributes[key]))
	}

	info, err := buildInformation(report.Information)
	if err != nil {
		return XMLElement{}, err
	}
	if info != nil {
		root.Children = append(root.Children, *info)
	}

	if report.IsDisabled() {
		root.Children = append(root.Children, XMLElement{
			XMLName: xml.Name{Local: "notice"},
			Children: []XMLElement{
				createSimpleElement("title", report.Disabled.Title),
				createSimpleElement("message", report.Disabled.Message),
			},
		})
		return root, nil
	}

	sections := XMLElement{XMLName: xml.Name{Local: "sections"}}
	for i, section := range report.Sections {
		sections.Children = append(sections.Children, buildSectionElement(section, i+1, options))
	}

	attendances := XMLElement{XMLName: xml.Name{Local: "attendances"}}
	for i, entry := range report.Attendances {
		attendances.Children = append(attendances.Children, XMLElement{
			XMLName:    xml.Name{Local: "attendance"},
			Attributes: []xml.Attr{attr(options.IndexAttribute, strconv.Itoa(i+1))},
			Children: compact(
				createSimpleElement("code", entry.Code),
				createSimpleElement("description", entry.Description),
				createSimpleElement("date", entry.Date),
				createSimpleElement("period", entry.Period),
				createSimpleElement("name", entry.Name),
			),
		})
	}

	root.Children = append(root.Children, sections, attendances)
	return root, nil
}

// buildInformation renders the student record as <field> elements, one per
// top-level key in key order. Nested values are kept as compact JSON text.
func buildInformation(raw json.RawMessage) (*XMLElement, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}

	element := &XMLElement{XMLName: xml.Name{Local: "information"}}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Not an object: keep the value as text.
		element.Value = string(raw)
		return element, nil
	}

	for _, key := range slices.Sorted(maps.Keys(fields)) {
		value, err := jsonText(fields[key])
		if err != nil {
			return nil, fmt.Errorf("information field %q: %w", key, err)
		}
		element.Children = append(element.Children, XMLElement{
			XMLName:    xml.Name{Local: "field"},
			Attributes: []xml.Attr{attr("name", key)},
			Value:      value,
		})
	}
	return element, nil
}

// buildSectionElement constructs a section XML element.
//
// STRUCTURE:
//
//	<section n="1" id="10">
//	  <expression>1(A)</expression>
//	  <name>Algebra</name>
//	  <teacher id="7">...</teacher>
//	  <assignments>...</assignments>
//	  <finalGrades>...</finalGrades>
//	  <citizenship>...</citizenship>
//	</section>
func buildSectionElement(section types.Section, index int, options GenerateOptions) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: "section"},
		Attributes: []xml.Attr{
			attr(options.IndexAttribute, strconv.Itoa(index)),
			attr("id", section.Section.ID.String()),
		},
		Children: compact(
			createSimpleElement("expression", section.Expression()),
			createSimpleElement("name", section.Name),
			createSimpleElement("room", section.Section.RoomName.String()),
		),
	}

	if t := section.Teacher; t != nil {
		element.Children = append(element.Children, XMLElement{
			XMLName:    xml.Name{Local: "teacher"},
			Attributes: []xml.Attr{attr("id", t.ID.String())},
			Children: compact(
				createSimpleElement("firstName", t.FirstName.String()),
				createSimpleElement("lastName", t.LastName.String()),
				createSimpleElement("email", t.Email.String()),
				createSimpleElement("schoolPhone", t.SchoolPhone.String()),
			),
		})
	}

	if section.Assignments != nil {
		assignments := XMLElement{XMLName: xml.Name{Local: "assignments"}}
		for i, a := range section.Assignments {
			assignments.Children = append(assignments.Children, buildAssignmentElement(a, i+1, options))
		}
		element.Children = append(element.Children, assignments)
	}

	if section.FinalGrades != nil {
		grades := XMLElement{XMLName: xml.Name{Local: "finalGrades"}}
		for _, g := range section.FinalGrades {
			grades.Children = append(grades.Children, buildFinalGradeElement(g))
		}
		element.Children = append(element.Children, grades)
	}

	if len(section.CitizenGrades) > 0 {
		citizenship := XMLElement{XMLName: xml.Name{Local: "citizenship"}}
		for _, term := range slices.Sorted(maps.Keys(section.CitizenGrades)) {
			grade := XMLElement{
				XMLName:    xml.Name{Local: "grade"},
				Attributes: []xml.Attr{attr("term", term)},
			}
			if code := section.CitizenGrades[term]; code != nil {
				grade.Value = code.CodeName.String()
			}
			citizenship.Children = append(citizenship.Children, grade)
		}
		element.Children = append(element.Children, citizenship)
	}

	return element
}

// buildAssignmentElement constructs an assignment XML element.
func buildAssignmentElement(a types.Assignment, index int, options GenerateOptions) XMLElement {
	src := a.Assignment
	element := XMLElement{
		XMLName: xml.Name{Local: "assignment"},
		Attributes: []xml.Attr{
			attr(options.IndexAttribute, strconv.Itoa(index)),
			attr("id", src.ID.String()),
		},
		Children: compact(
			createSimpleElement("name", src.Name.String()),
			createSimpleElement("abbreviation", src.Abbreviation.String()),
			createSimpleElement("dueDate", src.DueDate.String()),
			createSimpleElement("pointsPossible", src.PointsPossible.String()),
			createSimpleElement("weight", src.Weight.String()),
		),
	}

	if a.Category != nil {
		element.Children = append(element.Children, createSimpleElement("category", a.Category.Name.String()))
	}
	if s := a.Score; s != nil {
		element.Children = append(element.Children, compact(
			createSimpleElement("score", s.Score.String()),
			createSimpleElement("percent", s.Percent.String()),
			createSimpleElement("letterGrade", s.LetterGrade.String()),
			createSimpleElement("comment", s.Comment.String()),
		)...)
	}

	terms := XMLElement{XMLName: xml.Name{Local: "terms"}}
	for _, abbr := range a.Terms {
		terms.Children = append(terms.Children, createSimpleElement("term", abbr))
	}
	element.Children = append(element.Children, terms)

	return element
}

// buildFinalGradeElement constructs a final grade XML element.
func buildFinalGradeElement(g document.FinalGrade) XMLElement {
	return XMLElement{
		XMLName:    xml.Name{Local: "finalGrade"},
		Attributes: []xml.Attr{attr("term", g.ReportingTermID.String())},
		Children: compact(
			createSimpleElement("grade", g.Grade.String()),
			createSimpleElement("percent", g.Percent.String()),
			createSimpleElement("comment", g.Comment.String()),
		),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

// compact drops simple elements without a value.
func compact(elements ...XMLElement) []XMLElement {
	return slices.DeleteFunc(elements, func(e XMLElement) bool {
		return e.Value == "" && len(e.Children) == 0
	})
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// jsonText renders a JSON value as element text: strings unquoted, null
// empty, anything else compact JSON.
func jsonText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", nil
	}
	var buffer bytes.Buffer
	if err := json.Compact(&buffer, raw); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		fmt.Fprintf(buffer, ` %s="%s"`, a.Name.Local, escapeXML(a.Value))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML text and attribute values.
func escapeXML(s string) string {
	var buffer bytes.Buffer
	// EscapeText only fails on writer errors, which bytes.Buffer never returns.
	_ = xml.EscapeText(&buffer, []byte(s))
	return buffer.String()
}
