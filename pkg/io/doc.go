// Package io writes scan results and dependency graphs as JSON.
//
// # Graph Format
//
// [WriteGraph] emits a graph as two arrays. Nodes are sorted by ID, edges
// keep graph order:
//
//	{
//	  "nodes": [
//	    {"id": "Alice.Hair.3", "kind": "package", "meta": {"creator": "Alice"}},
//	    {"id": "Carol.Pose.2", "kind": "dependency"}
//	  ],
//	  "edges": [
//	    {"from": "Alice.Hair.3", "to": "Carol.Pose.2"}
//	  ],
//	  "cycles": []
//	}
//
// # Report Format
//
// [WriteReport] emits one object per scan run. Map keys and dependent
// lists are sorted so two runs over the same libraries differ only in
// run_id:
//
//	{
//	  "run_id": "6f1c...",
//	  "main": "/vam",
//	  "source": "/archive",
//	  "satisfied": {"Dan.Look.1": {"satisfied_by": "Dan.Look.1", "dependents": ["Alice.Hair.3"]}},
//	  "resolved": {"Bob.Skin.latest": {"match": "Bob.Skin.4", "rule": "latest", ...}},
//	  "missing": {"Carol.Pose.2": {"dependents": ["Alice.Hair.3"]}},
//	  "unreferenced": ["Dan.Look.1"]
//	}
package io
