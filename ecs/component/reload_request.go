package component

// ReloadRequest marks a short-lived entity asking the game loop to rebuild the
// current level from its prefabs. F5, the pause menu and file watching all
// create one.
type ReloadRequest struct{}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
