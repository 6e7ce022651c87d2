/*
Package operation runs the two tpull workflows end to end.

	 remote: owner/repo[@ref]                 local: cwd
	+------------------------+          +------------------------+
	| parse target, resolve  |          | seed owner/repo/ref    |
	| ref, seed variables    |          | load config (required) |
	+-----------+------------+          +-----------+------------+
	            |                                   |
	+-----------v------------+                      |
	| download + extract to  |                      |
	| a temporary workspace  |                      |
	+-----------+------------+                      |
	            |                                   |
	+-----------v-----------------------------------v+
	|   version gate -> prompts -> replacements      |
	+-----------+------------------------------------+
	            |
	+-----------v------------+
	| copy into destination  |  (remote only)
	+------------------------+

🎯 Purpose:
- Glue the provider, archive, config, prompt, text and output packages
- Keep the destination untouched until every prompt is answered
- Always remove the temporary workspace

⚡ Destination:
The project_name variable names the output directory, falling back to the
repository name. It is checked for emptiness before the download when already
known, and again after prompts.

🔍 Example:

	result, err := operation.RunRemote(ctx, operation.RemoteOptions{
		Options: operation.Options{ProjectName: "billing", SkipPrompt: true},
		Target:  "acme/go-service@v1.2.0",
	})
*/
package operation
