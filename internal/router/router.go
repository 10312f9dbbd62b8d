package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg requests the router to show the screen for a route.
type NavigateMsg struct {
	Route nav.Route
}

// Navigate returns a command that navigates to r.
func Navigate(r nav.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Resolver builds the screen for a route.
type Resolver func(nav.Route) screen.Screen

// Router manages a stack of screens.
type Router struct {
	stack   []screen.Screen
	resolve Resolver
}

// New creates a new Router with the given initial screen. resolve may be nil
// if the app never navigates by route.
func New(initial screen.Screen, resolve Resolver) *Router {
	return &Router{
		stack:   []screen.Screen{initial},
		resolve: resolve,
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Navigate shows the screen for route. If a screen of the same kind is
// already on the stack, everything above it is dropped: a matching screen is
// re-initialised in place, otherwise it is replaced by a fresh one.
// Unmatched routes are pushed.
func (r *Router) Navigate(route nav.Route) tea.Cmd {
	if r.resolve == nil {
		return nil
	}

	for i := len(r.stack) - 1; i >= 0; i-- {
		routed, ok := r.stack[i].(screen.Routed)
		if !ok || routed.Route().Kind != route.Kind {
			continue
		}
		if sameDestination(routed.Route(), route) {
			r.stack = r.stack[:i+1]
			return r.stack[i].Init()
		}
		r.stack = r.stack[:i+1]
		return r.Replace(r.resolve(route))
	}

	return r.Push(r.resolve(route))
}

// sameDestination reports whether target can be served by the existing
// screen. An unfiltered roadmap route keeps whatever filter is applied.
func sameDestination(existing, target nav.Route) bool {
	if target.Kind == nav.KindRoadmap && target.Topic == "" && target.Experience == "" {
		return true
	}
	return existing == target
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case NavigateMsg:
		return r.Navigate(msg.Route)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
