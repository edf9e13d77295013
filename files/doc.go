// Package files implements the file service, which saves, loads, deletes,
// moves and copies files and directories without ever failing loudly.
//
// No method returns an error or lets a panic escape. Each reports failure
// through its result alone (false, "", an empty slice, or a false ok flag)
// and records the cause, classified by error code, on the service logger.
//
// The service works on host paths through a core.FS, which defaults to the
// local filesystem. Tests substitute an in-memory filesystem:
//
//	svc := files.New(files.WithFS(billy.NewMemory()))
//	svc.SaveFile("hello", "/project/notes.txt")
//	svc.LoadFile("/project/notes.txt") // "hello"
package files
