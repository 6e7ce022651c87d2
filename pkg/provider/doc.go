/*
Package provider defines how tpull talks to template repository hosts.

	   "owner/repo@ref"
	          |
	   +------+------+
	   | ParseTarget |
	   +------+------+
	          |
	   +------+------+        +-------------+
	   | ResolveRef  +------->+  Provider   |
	   | "", latest  |        | (registry)  |
	   +------+------+        +------+------+
	          |                      |
	          |               +------+------+
	          +-------------->+   GitHub    |
	                          |  tarball    |
	                          +-------------+

🎯 Purpose:
- Parses command-line targets into owner, repo and ref
- Resolves an empty ref to the default branch and "latest" to the newest tag
- Streams repository tarballs with progress callbacks

🤝 Interfaces:
- Provider: default branch, latest tag, tarball download
- Factory: builds a Provider from Options (token, base URL)

Implementations register themselves from init, see provider/github.
*/
package provider
