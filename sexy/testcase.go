package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FenceProgram is the input fence holding a program literal.
const FenceProgram = "fold-program"

// FencePasses lists the passes to run, separated by whitespace.
const FencePasses = "passes"

// AssertionType represents the type of assertion code fence in a test
type AssertionType string

const (
	// AssertionTypeProgram is a pattern the folded program must match.
	AssertionTypeProgram AssertionType = "program"
	// AssertionTypeParseError is the exact error reading the input must produce.
	AssertionTypeParseError AssertionType = "parse-error"
)

// Assertion represents a single assertion in a test
type Assertion struct {
	Type       AssertionType
	Content    string // The raw content of the assertion code fence
	ParsedSexy *Node  // Parsed pattern; nil for parse-error assertions
	Line       int
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name       string   // The test name from the heading (after "Test: ")
	Input      string   // The raw program literal from the input fence
	Passes     []string // Pass names from the passes fence, nil if absent
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
//
// A test case starts at any heading of the form "Test: <name>" and runs
// until the next such heading.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)

	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var currentTestCase *TestCase
	var sawPasses bool

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}
			if currentTestCase != nil {
				if err := validateTestCase(currentTestCase); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *currentTestCase)
			}
			currentTestCase = &TestCase{
				Name:       strings.TrimPrefix(headingText, "Test: "),
				Assertions: []Assertion{},
			}
			sawPasses = false

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if currentTestCase == nil {
				// Plain code blocks are fine anywhere; tagged ones only inside tests.
				if language != "" {
					if isKnownFence(language) {
						return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
					}
					return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", lineNum, language)
				}
				return ast.WalkContinue, nil
			}

			switch {
			case language == "":
			case language == FenceProgram:
				if currentTestCase.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, currentTestCase.Name)
				}
				currentTestCase.Input = strings.TrimRight(content, "\n")
			case language == FencePasses:
				if sawPasses {
					return ast.WalkStop, fmt.Errorf("line %d: multiple passes fences found in test '%s'", lineNum, currentTestCase.Name)
				}
				sawPasses = true
				currentTestCase.Passes = strings.Fields(content)
			case isAssertionFence(language):
				assertion := Assertion{
					Type:    AssertionType(language),
					Content: strings.TrimRight(content, "\n"),
					Line:    lineNum,
				}
				if assertion.Type == AssertionTypeProgram {
					parsedSexy, parseErr := Parse(assertion.Content)
					if parseErr != nil {
						return ast.WalkStop, fmt.Errorf("line %d: failed to parse assertion in test '%s': %w", lineNum, currentTestCase.Name, parseErr)
					}
					assertion.ParsedSexy = parsedSexy
				}
				currentTestCase.Assertions = append(currentTestCase.Assertions, assertion)
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, currentTestCase.Name)
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if currentTestCase != nil {
		if err := validateTestCase(currentTestCase); err != nil {
			return nil, err
		}
		testCases = append(testCases, *currentTestCase)
	}

	return testCases, nil
}

// extractTextFromNode extracts plain text content from a markdown node
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

// extractCodeBlockContent extracts the content from a fenced code block
func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

func isAssertionFence(language string) bool {
	return language == string(AssertionTypeProgram) ||
		language == string(AssertionTypeParseError)
}

func isKnownFence(language string) bool {
	return language == FenceProgram || language == FencePasses || isAssertionFence(language)
}

// validateTestCase ensures a test case has both input and at least one assertion
func validateTestCase(testCase *TestCase) error {
	if testCase.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	return nil
}

// getLineNumber calculates the line number of a given AST node
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	return bytes.Count(source[:min(startPos, len(source))], []byte{'\n'}) + 1
}
