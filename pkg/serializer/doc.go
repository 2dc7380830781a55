// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer reads and writes petspec documents.
//
// Three formats are supported:
//   - JSON: machine-readable, indented output
//   - YAML: human-readable input and output
//   - Table: write-only tabular output
//
// # Reading
//
// Documents can be loaded from local files or http(s) URLs. The format is
// picked from the file extension; documents without a known extension are
// decoded as YAML, which also accepts JSON:
//
//	doc, err := serializer.LoadDocument(ctx, "https://cdn.example.com/rex.json",
//	    serializer.WithTotalTimeout(30*time.Second),
//	    serializer.WithMaxBytes(1<<20))
//
// Typed loading:
//
//	spec, err := serializer.FromFile[petspec.Spec](ctx, "rex.yaml")
//
// # Writing
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, outPath)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// Table format requires the value to implement Tabler; other values fail
// with ErrNotTabular.
//
// # HTTP
//
//	serializer.RespondJSON(w, http.StatusOK, body)
//
// RespondJSON encodes into a buffer first so an encoding failure never
// produces a partial response.
package serializer
