/*
Package status draws tpull's terminal output.

	+-----------------------------+
	|  ########  #######   ...    |   Banner
	+-----------------------------+
	| ╭─────────────────────────╮ |
	| │ tpull v1.2.3 - ...      │ |   InfoBox
	| ╰─────────────────────────╯ |
	+-----------------------------+
	| ⏬ Pulling: repo@ref  ...   |   DownloadUI (spinner)
	| ⏬ Pulling: repo@ref [===-] |   DownloadUI (progress bar)
	| ✅ Pull completed: repo@ref |
	+-----------------------------+

🎯 Purpose:
- Prints the banner and the version box
- Shows download progress while a template tarball streams in
- Formats durations and byte counts for humans

Color and live redraws only happen when the writer is a terminal. Anything
else (pipes, files, test buffers) gets plain final lines.
*/
package status
