/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

// swaggerJSON is the API document served at /api/swagger.json and
// rendered by the docs UI.
const swaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "go-mmio API",
    "description": "RESTful APIs to interact with the go-mmio server",
    "version": "1.0.0"
  },
  "basePath": "/api",
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/bars": {
      "get": {
        "summary": "List BAR indices present in the trace store",
        "responses": {
          "200": {
            "description": "BAR indices, ascending",
            "schema": {"type": "array", "items": {"type": "integer"}}
          }
        }
      }
    },
    "/bars/{bar}/entries": {
      "get": {
        "summary": "List register entries stored for one BAR",
        "parameters": [
          {"name": "bar", "in": "path", "required": true, "type": "integer"}
        ],
        "responses": {
          "200": {
            "description": "Register entries",
            "schema": {"type": "array", "items": {"type": "object"}}
          },
          "404": {"description": "No data for the BAR"}
        }
      }
    },
    "/build": {
      "post": {
        "summary": "Generate the Verilog module text from the stored trace",
        "parameters": [
          {"name": "options", "in": "body", "schema": {"type": "object"}}
        ],
        "responses": {
          "200": {
            "description": "Generated module",
            "schema": {"type": "object", "properties": {"module": {"type": "string"}}}
          },
          "400": {"description": "Invalid generation options"},
          "500": {"description": "Generation failed"}
        }
      }
    }
  }
}`
