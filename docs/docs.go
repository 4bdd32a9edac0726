// Package docs holds the swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/ping": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/scores/me": {
			"get": {
				"tags": [
					"scores"
				],
				"summary": "Get my score",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ScoreResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"scores"
				],
				"summary": "Sync my score",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ScoreResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Cumulative total",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.SyncScoreInput"
						}
					}
				]
			}
		},
		"/leaderboard": {
			"get": {
				"tags": [
					"leaderboard"
				],
				"summary": "All-time leaderboard",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "integer",
						"default": 1,
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"default": 10,
						"description": "Items per page",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/leaderboard/weekly": {
			"get": {
				"tags": [
					"leaderboard"
				],
				"summary": "Weekly leaderboard",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/handler.WeeklyScoreResponse"
							}
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"default": 10,
						"description": "Number of entries",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/admin/leaderboard/weekly/reset": {
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Reset weekly leaderboard (Admin)",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/rooms": {
			"post": {
				"tags": [
					"rooms"
				],
				"summary": "Create a room",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.RoomResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Room settings",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateRoomInput"
						}
					}
				]
			}
		},
		"/rooms/{code}": {
			"get": {
				"tags": [
					"rooms"
				],
				"summary": "Get a room",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.RoomResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/join": {
			"post": {
				"tags": [
					"rooms"
				],
				"summary": "Join a room",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.RoomResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/participants": {
			"get": {
				"tags": [
					"rooms"
				],
				"summary": "Room roster",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/handler.ParticipantResponse"
							}
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/events": {
			"get": {
				"tags": [
					"rooms"
				],
				"summary": "Room event stream",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/start": {
			"post": {
				"tags": [
					"rooms"
				],
				"summary": "Start a room",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.RoomResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/quiz": {
			"get": {
				"tags": [
					"rooms"
				],
				"summary": "Current quiz question",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/quiz/answer": {
			"post": {
				"tags": [
					"rooms"
				],
				"summary": "Answer the current question",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					},
					{
						"description": "Chosen option",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AnswerInput"
						}
					}
				]
			}
		},
		"/rooms/{code}/race/press": {
			"post": {
				"tags": [
					"rooms"
				],
				"summary": "Race press",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/rooms/{code}/results": {
			"get": {
				"tags": [
					"rooms"
				],
				"summary": "Final standings",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Room code",
						"name": "code",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/arcade/sessions": {
			"post": {
				"tags": [
					"arcade"
				],
				"summary": "Start an arcade session",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ArcadeSessionResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/arcade/sessions/{id}": {
			"get": {
				"tags": [
					"arcade"
				],
				"summary": "Get an arcade session",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ArcadeSessionResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"delete": {
				"tags": [
					"arcade"
				],
				"summary": "End an arcade session",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/arcade/sessions/{id}/snake": {
			"post": {
				"tags": [
					"arcade"
				],
				"summary": "Start a snake game",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"get": {
				"tags": [
					"arcade"
				],
				"summary": "Snake state",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/arcade/sessions/{id}/snake/turn": {
			"post": {
				"tags": [
					"arcade"
				],
				"summary": "Turn the snake",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "up, down, left or right",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.TurnInput"
						}
					}
				]
			}
		},
		"/arcade/sessions/{id}/memory": {
			"post": {
				"tags": [
					"arcade"
				],
				"summary": "Start a memory game",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"get": {
				"tags": [
					"arcade"
				],
				"summary": "Memory state",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/arcade/sessions/{id}/memory/flip": {
			"post": {
				"tags": [
					"arcade"
				],
				"summary": "Flip a card",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Session ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Card index",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.FlipInput"
						}
					}
				]
			}
		},
		"/products": {
			"get": {
				"tags": [
					"store"
				],
				"summary": "List products",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				}
			}
		},
		"/shipping/quote": {
			"get": {
				"tags": [
					"store"
				],
				"summary": "Shipping quote",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "CEP, with or without the dash",
						"name": "postal_code",
						"in": "query",
						"required": true
					}
				]
			}
		},
		"/checkout": {
			"post": {
				"tags": [
					"store"
				],
				"summary": "Create a checkout session",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Product and shipping address",
						"name": "input",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CheckoutInput"
						}
					}
				]
			}
		},
		"/orders/{session_id}": {
			"get": {
				"tags": [
					"store"
				],
				"summary": "Get an order",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.OrderResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Checkout session ID",
						"name": "session_id",
						"in": "path",
						"required": true
					}
				]
			}
		}
	},
	"definitions": {
		"handler.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		},
		"handler.SyncScoreInput": {
			"type": "object",
			"properties": {
				"total_points": {
					"type": "integer"
				}
			}
		},
		"handler.ScoreResponse": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"player_name": {
					"type": "string"
				},
				"total_points": {
					"type": "integer"
				},
				"games_played": {
					"type": "integer"
				},
				"games_won": {
					"type": "integer"
				},
				"last_updated": {
					"type": "string"
				}
			}
		},
		"handler.WeeklyScoreResponse": {
			"type": "object",
			"properties": {
				"rank": {
					"type": "integer"
				},
				"user_id": {
					"type": "string"
				},
				"player_name": {
					"type": "string"
				},
				"total_points": {
					"type": "integer"
				},
				"games_played": {
					"type": "integer"
				},
				"games_won": {
					"type": "integer"
				},
				"week_start": {
					"type": "string"
				},
				"week_end": {
					"type": "string"
				}
			}
		},
		"handler.CreateRoomInput": {
			"type": "object",
			"properties": {
				"game_type": {
					"type": "string"
				},
				"max_players": {
					"type": "integer"
				}
			}
		},
		"handler.AnswerInput": {
			"type": "object",
			"properties": {
				"option": {
					"type": "integer"
				}
			}
		},
		"handler.ParticipantResponse": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"player_name": {
					"type": "string"
				},
				"score": {
					"type": "integer"
				},
				"joined_at": {
					"type": "string"
				},
				"finish_time": {
					"type": "integer"
				},
				"position": {
					"type": "integer"
				}
			}
		},
		"handler.RoomResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"room_code": {
					"type": "string"
				},
				"game_type": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"max_players": {
					"type": "integer"
				},
				"host_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"started_at": {
					"type": "string"
				},
				"finished_at": {
					"type": "string"
				},
				"winner_id": {
					"type": "string"
				},
				"countdown_ms": {
					"type": "integer"
				},
				"min_players": {
					"type": "integer"
				},
				"can_start": {
					"type": "boolean"
				},
				"participants": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.ParticipantResponse"
					}
				}
			}
		},
		"handler.ArcadeSessionResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"total_points": {
					"type": "integer"
				},
				"authenticated": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"handler.TurnInput": {
			"type": "object",
			"properties": {
				"direction": {
					"type": "string"
				}
			}
		},
		"handler.FlipInput": {
			"type": "object",
			"properties": {
				"card": {
					"type": "integer"
				}
			}
		},
		"handler.AddressInput": {
			"type": "object",
			"properties": {
				"line1": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"state": {
					"type": "string"
				},
				"postal_code": {
					"type": "string"
				}
			}
		},
		"handler.CheckoutInput": {
			"type": "object",
			"properties": {
				"product_name": {
					"type": "string"
				},
				"product_price": {
					"type": "string"
				},
				"address": {
					"$ref": "#/definitions/handler.AddressInput"
				}
			}
		},
		"handler.OrderResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"session_id": {
					"type": "string"
				},
				"product_name": {
					"type": "string"
				},
				"amount": {
					"type": "string"
				},
				"shipping_fee": {
					"type": "string"
				},
				"postal_code": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BelieveStore API",
	Description:      "Mini-games, leaderboards and checkout for the BelieveStore storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
