package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"solgo/compiler-go/pkg/ast"
	"solgo/compiler-go/pkg/driver"
)

// contractFixture is the YAML description of one source unit. The tool
// consumes pre-structured declarations rather than Solidity text; parsing
// source is the front end's job, not this exporter's.
type contractFixture struct {
	Source    string            `yaml:"source"`
	Contracts []fixtureContract `yaml:"contracts"`
}

type fixtureContract struct {
	Name      string            `yaml:"name"`
	Kind      string            `yaml:"kind"`
	Bases     []string          `yaml:"bases"`
	Variables []fixtureVariable `yaml:"variables"`
	Functions []fixtureFunction `yaml:"functions"`
	Events    []fixtureEvent    `yaml:"events"`
}

type fixtureVariable struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Visibility string `yaml:"visibility"`
	Constant   bool   `yaml:"constant"`
}

type fixtureFunction struct {
	Name          string         `yaml:"name"`
	Constructor   bool           `yaml:"constructor"`
	Fallback      bool           `yaml:"fallback"`
	Visibility    string         `yaml:"visibility"`
	Mutability    string         `yaml:"mutability"`
	Params        []fixtureParam `yaml:"params"`
	Returns       []fixtureParam `yaml:"returns"`
	Unimplemented bool           `yaml:"unimplemented"`
}

type fixtureParam struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Indexed bool   `yaml:"indexed"`
}

type fixtureEvent struct {
	Name      string         `yaml:"name"`
	Params    []fixtureParam `yaml:"params"`
	Anonymous bool           `yaml:"anonymous"`
}

func loadFixture(path string) (*contractFixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var fixture contractFixture
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	if fixture.Source == "" {
		fixture.Source = path
	}
	if len(fixture.Contracts) == 0 {
		return nil, fmt.Errorf("fixture: %s declares no contracts", path)
	}
	return &fixture, nil
}

// buildUnit lowers the fixture into an AST source unit inside the given
// session. Base names resolve against contracts declared earlier in the
// same fixture.
func buildUnit(s *driver.Session, fixture *contractFixture) (*ast.SourceUnit, error) {
	b := s.Builder(fixture.Source)

	byName := map[string]*ast.ContractDefinition{}
	var nodes []ast.Node
	for _, fc := range fixture.Contracts {
		contract, err := buildContract(b, fc, byName)
		if err != nil {
			return nil, err
		}
		byName[fc.Name] = contract
		nodes = append(nodes, contract)
	}

	unit := b.Unit(nodes...)
	s.AddUnit(unit)
	return unit, nil
}

func buildContract(b *ast.Builder, fc fixtureContract, known map[string]*ast.ContractDefinition) (*ast.ContractDefinition, error) {
	if fc.Name == "" {
		return nil, fmt.Errorf("fixture: contract without a name")
	}

	var bases []*ast.InheritanceSpecifier
	for _, baseName := range fc.Bases {
		base, ok := known[baseName]
		if !ok {
			return nil, fmt.Errorf("fixture: contract %s inherits unknown base %q (declare bases first)", fc.Name, baseName)
		}
		bases = append(bases, b.Base(base))
	}

	var subNodes []ast.Node
	for _, fv := range fc.Variables {
		typeName, err := parseType(b, fv.Type)
		if err != nil {
			return nil, fmt.Errorf("fixture: variable %s.%s: %w", fc.Name, fv.Name, err)
		}
		visibility, err := parseVisibility(fv.Visibility)
		if err != nil {
			return nil, fmt.Errorf("fixture: variable %s.%s: %w", fc.Name, fv.Name, err)
		}
		subNodes = append(subNodes, b.StateVar(fv.Name, typeName, visibility))
	}

	for _, ff := range fc.Functions {
		fn, err := buildFunction(b, fc.Name, ff)
		if err != nil {
			return nil, err
		}
		subNodes = append(subNodes, fn)
	}

	for _, fe := range fc.Events {
		params, err := parseParams(b, fe.Params)
		if err != nil {
			return nil, fmt.Errorf("fixture: event %s.%s: %w", fc.Name, fe.Name, err)
		}
		event := b.Run().NewEventDefinition(ast.SourceLocation{Source: fc.Name}, fe.Name, nil, params, fe.Anonymous)
		subNodes = append(subNodes, event)
	}

	switch fc.Kind {
	case "", "contract":
		return b.Contract(fc.Name, bases, subNodes...), nil
	case "interface":
		if len(bases) > 0 {
			return nil, fmt.Errorf("fixture: interface %s must not inherit", fc.Name)
		}
		return b.Iface(fc.Name, subNodes...), nil
	case "library":
		return b.Library(fc.Name, subNodes...), nil
	default:
		return nil, fmt.Errorf("fixture: contract %s has unknown kind %q", fc.Name, fc.Kind)
	}
}

func buildFunction(b *ast.Builder, contractName string, ff fixtureFunction) (*ast.FunctionDefinition, error) {
	params, err := parseParams(b, ff.Params)
	if err != nil {
		return nil, fmt.Errorf("fixture: function %s.%s: %w", contractName, ff.Name, err)
	}
	returns, err := parseParams(b, ff.Returns)
	if err != nil {
		return nil, fmt.Errorf("fixture: function %s.%s: %w", contractName, ff.Name, err)
	}
	visibility, err := parseVisibility(ff.Visibility)
	if err != nil {
		return nil, fmt.Errorf("fixture: function %s.%s: %w", contractName, ff.Name, err)
	}
	mutability, err := parseMutability(ff.Mutability)
	if err != nil {
		return nil, fmt.Errorf("fixture: function %s.%s: %w", contractName, ff.Name, err)
	}

	if ff.Constructor && ff.Fallback {
		return nil, fmt.Errorf("fixture: function in %s is both constructor and fallback", contractName)
	}
	name := ff.Name
	if ff.Constructor || ff.Fallback {
		name = ""
	}

	var body *ast.Block
	if !ff.Unimplemented {
		body = b.Block()
	}
	return b.Run().NewFunctionDefinition(
		ast.SourceLocation{Source: contractName},
		name, visibility, mutability, ff.Constructor,
		nil, nil, params, nil, returns, body,
	), nil
}

func parseParams(b *ast.Builder, params []fixtureParam) (*ast.ParameterList, error) {
	decls := make([]*ast.VariableDeclaration, 0, len(params))
	for _, p := range params {
		typeName, err := parseType(b, p.Type)
		if err != nil {
			return nil, err
		}
		decl := b.Run().NewVariableDeclaration(
			ast.SourceLocation{},
			typeName, p.Name, nil, ast.VisibilityDefault,
			ast.VariableOptions{Indexed: p.Indexed},
		)
		decls = append(decls, decl)
	}
	return b.Params(decls...), nil
}

func parseVisibility(s string) (ast.Visibility, error) {
	switch strings.TrimSpace(s) {
	case "":
		return ast.VisibilityDefault, nil
	case "private":
		return ast.VisibilityPrivate, nil
	case "internal":
		return ast.VisibilityInternal, nil
	case "public":
		return ast.VisibilityPublic, nil
	case "external":
		return ast.VisibilityExternal, nil
	default:
		return ast.VisibilityDefault, fmt.Errorf("unknown visibility %q", s)
	}
}

func parseMutability(s string) (ast.StateMutability, error) {
	switch strings.TrimSpace(s) {
	case "", "nonpayable":
		return ast.StateMutabilityNonPayable, nil
	case "pure":
		return ast.StateMutabilityPure, nil
	case "view":
		return ast.StateMutabilityView, nil
	case "payable":
		return ast.StateMutabilityPayable, nil
	default:
		return ast.StateMutabilityNonPayable, fmt.Errorf("unknown mutability %q", s)
	}
}

// parseType turns a type spelling like "mapping(address => uint256[])"
// into type name nodes. Array suffixes bind outward, so uint256[3][] is a
// dynamic array of uint256[3].
func parseType(b *ast.Builder, s string) (ast.TypeName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type")
	}

	if strings.HasPrefix(s, "mapping(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("malformed mapping type %q", s)
		}
		inner := s[len("mapping(") : len(s)-1]
		arrow := splitMappingArrow(inner)
		if arrow < 0 {
			return nil, fmt.Errorf("malformed mapping type %q", s)
		}
		keyName := strings.TrimSpace(inner[:arrow])
		key, err := parseType(b, keyName)
		if err != nil {
			return nil, err
		}
		elementaryKey, ok := key.(*ast.ElementaryTypeName)
		if !ok {
			return nil, fmt.Errorf("mapping key %q must be an elementary type", keyName)
		}
		value, err := parseType(b, inner[arrow+2:])
		if err != nil {
			return nil, err
		}
		return b.MappingTy(elementaryKey, value), nil
	}

	if strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open <= 0 {
			return nil, fmt.Errorf("malformed array type %q", s)
		}
		base, err := parseType(b, s[:open])
		if err != nil {
			return nil, err
		}
		length := strings.TrimSpace(s[open+1 : len(s)-1])
		if length == "" {
			return b.ArrayTy(base, nil), nil
		}
		return b.ArrayTy(base, b.Num(length)), nil
	}

	if s == "address payable" {
		payable := ast.StateMutabilityPayable
		return b.Run().NewElementaryTypeName(ast.SourceLocation{}, "address", &payable), nil
	}
	if isElementaryName(s) {
		return b.Ty(s), nil
	}
	return b.UserTy(strings.Split(s, ".")...), nil
}

// splitMappingArrow finds the top-level "=>" of a mapping body.
func splitMappingArrow(s string) int {
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '=':
			if depth == 0 && s[i+1] == '>' {
				return i
			}
		}
	}
	return -1
}

func isElementaryName(s string) bool {
	switch s {
	case "bool", "string", "address", "address payable", "bytes", "byte":
		return true
	}
	for _, prefix := range []string{"uint", "int", "bytes", "fixed", "ufixed"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
