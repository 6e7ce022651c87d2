// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package text applies ordered replacement rules to files under a template root.

	      rules (ordered)                 vars
	            |                          |
	   +--------+--------+        +--------+-------+
	   |  ValidateRules  |        |     render     |
	   | (transforms)    |        | once per rule  |
	   +--------+--------+        +--------+-------+
	            |                          |
	            +------------+-------------+
	                         |
	                 +-------+-------+
	                 |    pattern    |
	                 | literal/regex |
	                 +-------+-------+
	                         |
	          for each file (ordered, via pathguard)
	                         |
	   read -> binary check -> count -> replace -> write if changed
	                         |
	                 +-------+-------+
	                 |     Tally     |
	                 | first-touch   |
	                 +---------------+

🎯 Purpose:
- Rewrites template files in place using rendered replacement values
- Keeps every write inside the template root
- Reports per-file match totals once all rules are done

⚡ Key Responsibilities:
- Rules run strictly in order, files within a rule strictly in order
- Any error aborts the pass; files already written stay written
- Binary files (any NUL byte) are rejected, never edited
- A rule with zero matches in a file fails unless failIfNoMatch is false

Later rules see the output of earlier ones. Nothing runs concurrently.
*/
package text
