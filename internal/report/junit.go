// Package report parses run artifacts into displayable structures.
//
// The backend attaches a JUnit XML report to every completed run. Parsing
// it is display-only enrichment: the run's server-computed status stays
// authoritative no matter what the report says.
package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// TestCase is one testcase entry of a JUnit report.
type TestCase struct {
	Name    string
	Passed  bool
	Message string // failure message, empty when passed
}

// Suite is a parsed JUnit testsuite.
type Suite struct {
	Name  string
	Tests int
	Cases []TestCase
}

// Failed counts the failing cases.
func (s *Suite) Failed() int {
	n := 0
	for _, c := range s.Cases {
		if !c.Passed {
			n++
		}
	}
	return n
}

type xmlFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

type xmlTestCase struct {
	Name    string      `xml:"name,attr"`
	Failure *xmlFailure `xml:"failure"`
}

type xmlTestSuite struct {
	Name      string        `xml:"name,attr"`
	Tests     int           `xml:"tests,attr"`
	TestCases []xmlTestCase `xml:"testcase"`
}

type xmlTestSuites struct {
	Suites []xmlTestSuite `xml:"testsuite"`
}

// ParseJUnit reads a JUnit XML document. Both a bare <testsuite> root and a
// <testsuites> wrapper are accepted; with a wrapper, suites are merged in
// order.
func ParseJUnit(data []byte) (*Suite, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}

	var xmlSuites []xmlTestSuite
	switch root {
	case "testsuite":
		var ts xmlTestSuite
		if err := xml.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("parsing junit report: %w", err)
		}
		xmlSuites = []xmlTestSuite{ts}
	case "testsuites":
		var tss xmlTestSuites
		if err := xml.Unmarshal(data, &tss); err != nil {
			return nil, fmt.Errorf("parsing junit report: %w", err)
		}
		xmlSuites = tss.Suites
	default:
		return nil, fmt.Errorf("unexpected junit root element %q", root)
	}

	suite := &Suite{}
	for _, ts := range xmlSuites {
		if suite.Name == "" {
			suite.Name = ts.Name
		}
		suite.Tests += ts.Tests
		for _, tc := range ts.TestCases {
			c := TestCase{Name: tc.Name, Passed: tc.Failure == nil}
			if tc.Failure != nil {
				c.Message = tc.Failure.Message
				if c.Message == "" {
					c.Message = tc.Failure.Text
				}
			}
			suite.Cases = append(suite.Cases, c)
		}
	}
	if suite.Tests == 0 {
		suite.Tests = len(suite.Cases)
	}
	return suite, nil
}

// rootElement returns the name of the document's first start element.
func rootElement(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("parsing junit report: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}
