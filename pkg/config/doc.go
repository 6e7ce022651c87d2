/*
Package config loads the tpull-config file that ships inside a template.

	               +----------------+
	               | tpull-config.* |
	               +-------+--------+
	                       |
	     +-----------------+-----------------+
	     |                 |                 |
	+----+----+      +-----+----+      +-----+----+
	|  YAML   |      |   JSON   |      |   HCL    |
	| Parser  |      |  Parser  |      |  Parser  |
	+----+----+      +-----+----+      +-----+----+
	     |                 |                 |
	     +--------+--------+--------+--------+
	              |                 |
	       +------+------+   +------+------+
	       | JSON Schema |   |  Validate   |
	       |  (strict)   |   | dupes, xfms |
	       +------+------+   +------+------+
	              |                 |
	              +--------+--------+
	                       |
	                  +----+----+
	                  | Config  |
	                  +---------+

🎯 Purpose:
- Finds the config in a template root (yaml, yml, json, hcl in that order)
- Rejects unknown fields and wrong shapes before any file is touched
- Resolves transform names up front so typos fail early
- Reads the process environment (tokens, log settings)

🔄 Flow:
1. Load looks for the first existing file name
2. The matching Parser decodes it into a generic document
3. The document is checked against the embedded JSON Schema
4. The typed Config is decoded and cross-field checks run

A missing config is not an error here: Load returns nil and the caller
decides (remote templates copy as-is, local mode requires one).

🔍 Example:

	cfg, err := config.Load(ctx, afero.NewOsFs(), root)
	if err != nil {
		return err
	}
	if cfg != nil {
		rules := cfg.Rules()
	}
*/
package config
