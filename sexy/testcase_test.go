package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Deduplication

## Test: repeats
` + "```fold-program" + `
(program (arguments 1) (statements 1 1 2))
` + "```" + `
` + "```passes" + `
dedup
` + "```" + `
` + "```program" + `
(program (arguments 1) (statements 1 2))
` + "```" + `

## Test: no repeats
` + "```fold-program" + `
(program (statements 1 2))
` + "```" + `
` + "```passes" + `
dedup dummy
` + "```" + `
` + "```program" + `
(program (arguments) (statements 1 2))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "repeats")
	be.Equal(t, tc1.Input, "(program (arguments 1) (statements 1 1 2))")
	be.Equal(t, tc1.Passes, []string{"dedup"})
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeProgram)
	be.Equal(t, tc1.Assertions[0].Content, "(program (arguments 1) (statements 1 2))")
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), "(program (arguments 1) (statements 1 2))")
	be.Equal(t, tc1.Assertions[0].Line, 11)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "no repeats")
	be.Equal(t, tc2.Passes, []string{"dedup", "dummy"})
	be.Equal(t, tc2.Assertions[0].ParsedSexy.String(), "(program (arguments) (statements 1 2))")
}

func TestExtractTestCases_NoPassesFence(t *testing.T) {
	markdown := `## Test: default chain
` + "```fold-program" + `
(program)
` + "```" + `
` + "```program" + `
(program ...)
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.True(t, testCases[0].Passes == nil)
}

func TestExtractTestCases_EmptyPassesFence(t *testing.T) {
	markdown := `## Test: no passes
` + "```fold-program" + `
(program)
` + "```" + `
` + "```passes" + `
` + "```" + `
` + "```program" + `
(program ...)
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases[0].Passes), 0)
}

func TestExtractTestCases_ParseErrorAssertion(t *testing.T) {
	markdown := `## Test: unclosed
` + "```fold-program" + `
(program (statements 1
` + "```" + `
` + "```parse-error" + `
offset 0: unclosed '('
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)

	assertion := testCases[0].Assertions[0]
	be.Equal(t, assertion.Type, AssertionTypeParseError)
	be.Equal(t, assertion.Content, "offset 0: unclosed '('")
	be.True(t, assertion.ParsedSexy == nil)
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := `# Some document

This is just regular markdown content.

## Regular heading

No test cases here.`

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidAssertion(t *testing.T) {
	markdown := `## Test: invalid pattern
` + "```fold-program" + `
(program)
` + "```" + `
` + "```program" + `
(unclosed list
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to parse assertion in test 'invalid pattern'"))
	be.True(t, strings.Contains(err.Error(), "line 6"))
}

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		fenceType string
	}{
		{
			"fold-program fence outside test",
			"# Document\n\n```fold-program\n(program)\n```\n",
			"fold-program",
		},
		{
			"passes fence outside test",
			"# Document\n\n```passes\ndedup\n```\n",
			"passes",
		},
		{
			"program fence outside test",
			"# Document\n\n```program\n(program)\n```\n",
			"program",
		},
		{
			"parse-error fence outside test",
			"# Document\n\n```parse-error\noops\n```\n",
			"parse-error",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), "line 4: "+test.fenceType+" fence found outside of test case"))
		})
	}
}

func TestExtractTestCases_UnknownFenceOutsideTest(t *testing.T) {
	markdown := `# Document with unknown code block

` + "```go" + `
func main() {}
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "line 4: unknown fence language 'go' found outside of test case"))
}

func TestExtractTestCases_UnknownFenceInTest(t *testing.T) {
	markdown := `## Test: test with unknown fence
` + "```fold-program" + `
(program)
` + "```" + `
` + "```program" + `
(program ...)
` + "```" + `

` + "```shell" + `
echo "more code"
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'shell' in test 'test with unknown fence'"))
	be.True(t, strings.Contains(err.Error(), "line"))
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + "```program" + `
(program)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "test 'no input' has no input fence")
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + "```fold-program" + `
(program)
` + "```" + `
` + "```passes" + `
dedup
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.Equal(t, err.Error(), "test 'no assertions' has no assertion fences")
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: multiple inputs
` + "```fold-program" + `
(program (statements 1))
` + "```" + `
` + "```fold-program" + `
(program (statements 2))
` + "```" + `
` + "```program" + `
(program ...)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences found in test 'multiple inputs'"))
}

func TestExtractTestCases_MultiplePassesFences(t *testing.T) {
	markdown := `## Test: multiple chains
` + "```fold-program" + `
(program)
` + "```" + `
` + "```passes" + `
dedup
` + "```" + `
` + "```passes" + `
dummy
` + "```" + `
` + "```program" + `
(program ...)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple passes fences found in test 'multiple chains'"))
}

func TestExtractTestCases_AllowFencesWithoutLanguage(t *testing.T) {
	markdown := `# Document with generic code block

` + "```" + `
some code without language
` + "```" + `

## Test: valid test
` + "```fold-program" + `
(program (statements 1))
` + "```" + `
` + "```program" + `
(program (arguments) (statements 1))
` + "```" + `

` + "```" + `
more code without language in test
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Name, "valid test")
	be.Equal(t, testCases[0].Input, "(program (statements 1))")
	be.Equal(t, len(testCases[0].Assertions), 1)
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := `## Test: first test
` + "```fold-program" + `
(program)
` + "```" + `
` + "```program" + `
(program ...)
` + "```" + `

## Test: second test missing input
` + "```program" + `
(program ...)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'second test missing input' has no input fence"))
}

func TestExtractTestCases_MultiLineProgram(t *testing.T) {
	markdown := `## Test: multi-line
` + "```fold-program" + `
(program
 (arguments x y)
 (statements
  (call f 1)
  (call f 1)))
` + "```" + `
` + "```program" + `
(program
 (arguments x y)
 (statements (call f 1)))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)

	tc := testCases[0]
	be.Equal(t, tc.Input, "(program\n (arguments x y)\n (statements\n  (call f 1)\n  (call f 1)))")

	pattern := tc.Assertions[0].ParsedSexy
	be.Equal(t, pattern.Type, NodeList)
	be.Equal(t, len(pattern.Items), 3)
	be.Equal(t, pattern.Head(), "program")
	be.Equal(t, pattern.Items[2].String(), "(statements (call f 1))")
}
