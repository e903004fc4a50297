package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/confplane-go/core/config"
	"github.com/codewandler/confplane-go/core/hooks"
	"github.com/codewandler/confplane-go/ports/store"
)

// Full path: write a setting, bootstrap the node, watch the session manager
// get reconfigured with exactly the changed subset — and stay quiet on an
// identical re-dispatch.
func Test_EndToEnd_SetBootstrapDispatch(t *testing.T) {
	session := &fakeSub{}
	d := New(Options{
		Context:    t.Context(),
		Subsystems: Subsystems{Session: session},
	})
	t.Cleanup(d.Stop)

	hookReg := hooks.NewRegistry(nil)
	hookReg.RegisterChangeConfig("dispatcher", d.ChangeConfig)

	defaults := config.NewEnvDefaults().Register("broker", map[string]any{
		"allow_anonymous": false,
	})
	plane, err := config.NewPlane(config.PlaneOptions{
		Node:     "node-1",
		Store:    store.NewMemStore(),
		Defaults: defaults,
		Hook:     hookReg.ChangeConfig,
	})
	require.NoError(t, err)

	require.NoError(t, plane.Set(t.Context(), "broker", "allow_anonymous", true))

	// bootstrap pushes the full snapshot through the hook into the dispatcher
	require.NoError(t, plane.ConfigureNode(t.Context()))
	require.Len(t, session.calls, 1)
	require.Equal(t, []config.Setting{{Item: "allow_anonymous", Value: true}}, session.calls[0])

	// a second identical dispatch is fully suppressed
	require.NoError(t, plane.ConfigureNode(t.Context()))
	require.Len(t, session.calls, 1)
}
