// Package core is the stable import path for hosts that embed octconnect:
// an editor add-on, a build pipeline or an asset server. It re-exports a
// narrow slice of the internal packages.
//
// Example:
//
//	cat, err := core.BuildCatalog(core.Config{Root: "MyGame"})
//	if err != nil { /* handle */ }
//	s := core.NewSession("MyGame")
//	defs := s.Properties("Scripts/Goblin.lua")
//	_ = core.MarshalCatalog(os.Stdout, cat)
package core
