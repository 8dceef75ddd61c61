// Package di contains a small constructor-based dependency injection resolver.
//
// Providers are plain functions. Their parameters are the dependencies, their
// first result is the component and an optional second result is an error.
// Components are built lazily, exactly once, the first time something asks
// for them.
package di

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

type (
	// Name identifies a component: the provider name and the provided type.
	Name struct {
		name         string
		providedType reflect.Type
	}

	// Provider is a factory function, returning either T or (T, error).
	Provider any

	providerDef struct {
		name Name

		factory      reflect.Value
		dependencies []reflect.Type
		returnsError bool

		priority int
		order    int

		instance *reflect.Value
	}

	// Resolver holds the registered providers and the components built from them.
	//
	// Providers must not call back into the resolver that builds them.
	Resolver struct {
		mu        sync.Mutex
		providers []*providerDef
		built     []*providerDef

		logger *zerolog.Logger
	}

	// Option configures a Resolver.
	Option func(r *Resolver)

	// RegisterOption configures a single provider registration.
	RegisterOption func(opts *registerOptions)

	registerOptions struct {
		named    string
		priority int
	}
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// WithLogger makes the resolver trace component construction on the given logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Named overrides the provider name, which defaults to the function name.
func Named(name string) RegisterOption {
	return func(opts *registerOptions) {
		opts.named = name
	}
}

// Priority sets the provider priority. When several providers share a name,
// only the one with the highest priority is considered.
func Priority(priority int) RegisterOption {
	return func(opts *registerOptions) {
		opts.priority = priority
	}
}

func (n Name) String() string {
	return fmt.Sprintf("(%s, %s)", n.name, n.providedType.String())
}

func New(opts ...Option) *Resolver {
	nop := zerolog.Nop()
	r := &Resolver{
		logger: &nop,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a provider to the resolver.
func (r *Resolver) Register(provider Provider, opts ...RegisterOption) error {
	if provider == nil {
		return errors.New("provider must be a function, got nil")
	}
	t := reflect.TypeOf(provider)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("provider must be a function, got %T", provider)
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return errors.New("provider returning two values must return an error as the second value")
		}
	default:
		return errors.New("provider must return either the component, or the component and an error")
	}

	options := &registerOptions{
		named: filepath.Base(runtime.FuncForPC(reflect.ValueOf(provider).Pointer()).Name()),
	}
	for _, opt := range opts {
		opt(options)
	}

	dependencies := make([]reflect.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		dependencies[i] = t.In(i)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	def := &providerDef{
		name: Name{
			name:         options.named,
			providedType: t.Out(0),
		},
		factory:      reflect.ValueOf(provider),
		dependencies: dependencies,
		returnsError: t.NumOut() == 2,
		priority:     options.priority,
		order:        len(r.providers),
	}
	r.providers = append(r.providers, def)

	r.logger.Debug().
		Stringer("component", def.name).
		Int("priority", def.priority).
		Msg("provider registered")

	return nil
}

// MustRegister is like Register but panics if the provider is invalid.
func (r *Resolver) MustRegister(provider Provider, opts ...RegisterOption) *Resolver {
	if err := r.Register(provider, opts...); err != nil {
		panic(fmt.Sprintf("failed to register provider %T:\n\t%v", provider, err))
	}
	return r
}

// Close closes every built component implementing io.Closer, last built first.
// Built components are forgotten, so a later resolution builds fresh ones.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var closeErrors []error
	for i := len(r.built) - 1; i >= 0; i-- {
		def := r.built[i]
		instance := *def.instance
		def.instance = nil
		if !instance.IsValid() || (instance.Kind() == reflect.Pointer && instance.IsNil()) {
			continue
		}
		closer, ok := instance.Interface().(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("failed to close component %s:\n\t%w", def.name, err))
		}
	}
	r.built = nil

	return errors.Join(closeErrors...)
}

// Resolve returns the unique component assignable to T.
func Resolve[T any](resolver *Resolver) (T, error) {
	lookFor := typeOf[T]()
	val, found, err := resolveOne[T](resolver, queryByType{typ: lookFor})
	if err == nil && !found {
		err = fmt.Errorf("no provider found for %s", queryByType{typ: lookFor})
	}
	return val, err
}

// ResolveNamed returns the component assignable to T registered under name.
func ResolveNamed[T any](resolver *Resolver, name string) (T, error) {
	q := queryByName{name: Name{name: name, providedType: typeOf[T]()}}
	val, found, err := resolveOne[T](resolver, q)
	if err == nil && !found {
		err = fmt.Errorf("no provider found for %s", q)
	}
	return val, err
}

// TryResolve is like Resolve but reports found=false instead of failing when
// no provider matches.
func TryResolve[T any](resolver *Resolver) (value T, found bool, err error) {
	return resolveOne[T](resolver, queryByType{typ: typeOf[T]()})
}

// ResolveAll returns every component assignable to T, highest priority first.
func ResolveAll[T any](resolver *Resolver) ([]T, error) {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	q := queryByType{typ: typeOf[T]()}
	defs := resolver.find(q)
	components := make([]T, 0, len(defs))
	for _, def := range defs {
		val, err := resolver.instantiate(def, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve all for %s:\n\t%w", q, err)
		}
		comp, err := unReflect[T](val)
		if err != nil {
			return nil, err
		}
		components = append(components, comp)
	}
	return components, nil
}

func resolveOne[T any](resolver *Resolver, q query) (val T, found bool, err error) {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	resolved, found, err := resolver.resolve(q, nil)
	if err != nil {
		return val, false, fmt.Errorf("failed to resolve %s:\n\t%w", q, err)
	}
	if !found {
		return val, false, nil
	}
	val, err = unReflect[T](resolved)
	return val, err == nil, err
}

func (r *Resolver) resolve(q query, stack []Name) (reflect.Value, bool, error) {
	defs := r.find(q)
	if len(defs) == 0 {
		return reflect.Value{}, false, nil
	}
	if len(defs) > 1 && defs[0].priority == defs[1].priority {
		return reflect.Value{}, false, fmt.Errorf(
			"multiple providers found for %s, expected one and only one, got %s",
			q, describe(defs),
		)
	}
	val, err := r.instantiate(defs[0], stack)
	if err != nil {
		return reflect.Value{}, false, err
	}
	return val, true, nil
}

// find returns the providers wanted by the query, keeping only the highest
// priority provider per name, sorted by priority then registration order.
func (r *Resolver) find(q query) []*providerDef {
	byName := make(map[string]*providerDef)
	for _, def := range r.providers {
		if !q.want(def.name) {
			continue
		}
		current, exists := byName[def.name.name]
		if !exists || def.priority > current.priority {
			byName[def.name.name] = def
		}
	}

	basket := make([]*providerDef, 0, len(byName))
	for _, def := range byName {
		basket = append(basket, def)
	}
	sort.Slice(basket, func(i, j int) bool {
		if basket[i].priority != basket[j].priority {
			return basket[i].priority > basket[j].priority
		}
		return basket[i].order < basket[j].order
	})
	return basket
}

func (r *Resolver) instantiate(def *providerDef, stack []Name) (reflect.Value, error) {
	if def.instance != nil {
		return *def.instance, nil
	}
	for i, n := range stack {
		if n == def.name {
			cycle := append(slices.Clone(stack[i:]), def.name)
			return reflect.Value{}, fmt.Errorf("cycle found:\n%s", formatCycle(cycle))
		}
	}
	stack = append(stack, def.name)

	r.logger.Debug().
		Stringer("component", def.name).
		Int("dependencies", len(def.dependencies)).
		Msg("building component")

	dependencies := make([]reflect.Value, len(def.dependencies))
	for i, depType := range def.dependencies {
		dep, found, err := r.resolve(queryByType{typ: depType}, stack)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("failed to resolve dependency %s for provider %s:\n\t%w", depType, def.name, err)
		}
		if !found {
			return reflect.Value{}, fmt.Errorf("no provider found for dependency %s of provider %s", depType, def.name)
		}
		dependencies[i] = dep
	}

	instance, err := call(def, dependencies)
	if err != nil {
		return reflect.Value{}, err
	}
	def.instance = &instance
	r.built = append(r.built, def)

	return instance, nil
}

// call invokes the factory, turning a panic into an error.
func call(def *providerDef, dependencies []reflect.Value) (instance reflect.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic calling provider %s: %v", def.name, rec)
		}
	}()

	results := def.factory.Call(dependencies)
	if def.returnsError && !results[1].IsNil() {
		return reflect.Value{}, fmt.Errorf("provider %s failed:\n\t%w", def.name, results[1].Interface().(error))
	}
	return results[0], nil
}

func unReflect[T any](v reflect.Value) (res T, err error) {
	if !v.IsValid() {
		return res, fmt.Errorf("resolved value is invalid, expected %s", typeOf[T]())
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return res, nil
	}
	res, ok := v.Interface().(T)
	if !ok {
		return res, fmt.Errorf("value %v is not of type %s", v, typeOf[T]())
	}
	return res, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func describe(defs []*providerDef) string {
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.name.String()
	}
	return strings.Join(names, ", ")
}

func formatCycle(cycle []Name) string {
	var b strings.Builder
	for i, n := range cycle {
		b.WriteString(strings.Repeat("\t", i))
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(n.String())
		b.WriteString("\n")
	}
	return b.String()
}
