// Package docs 接口文档，内容与 internal/controller 中的 swag 注释一一对应，修改注释后需同步更新
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
        "/api/admin/challenges": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "管理端挑战列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "标题或 slug 关键字",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "draft",
                            "published",
                            "archived"
                        ],
                        "type": "string",
                        "description": "状态",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "quiz",
                            "puzzle",
                            "ordering",
                            "fillBlank"
                        ],
                        "type": "string",
                        "description": "挑战类型",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "页码",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "每页数量",
                        "name": "perPage",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "allOf": [
                                                {
                                                    "$ref": "#/definitions/util.PageResponse"
                                                },
                                                {
                                                    "type": "object",
                                                    "properties": {
                                                        "list": {
                                                            "type": "array",
                                                            "items": {
                                                                "$ref": "#/definitions/service.ChallengeListItem"
                                                            }
                                                        }
                                                    }
                                                }
                                            ]
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "slug 为空时由标题生成，重复时自动追加后缀",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "创建挑战",
                "parameters": [
                    {
                        "description": "挑战信息",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.ChallengeInput"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.ChallengeDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/admin/challenges/puzzle-image": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "上传拼图图片",
                "parameters": [
                    {
                        "type": "file",
                        "description": "图片文件",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/admin/challenges/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "不限制发布状态",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "管理端挑战详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "挑战ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.ChallengeDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "提供题目数据或修改类型时整体替换题目",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "更新挑战",
                "parameters": [
                    {
                        "type": "string",
                        "description": "挑战ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "需要修改的字段",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/service.ChallengeInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.ChallengeDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "已有成绩记录的挑战会被归档而不是删除",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战管理"
                ],
                "summary": "删除挑战",
                "parameters": [
                    {
                        "type": "string",
                        "description": "挑战ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.RemoveResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/admin/scores/top": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "积分管理"
                ],
                "summary": "积分前几名",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "返回条数，默认 5",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/repository.LeaderboardRow"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/admin/scores/users": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "积分管理"
                ],
                "summary": "用户积分列表",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "页码",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "每页数量",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "姓名或邮箱",
                        "name": "search",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "allOf": [
                                                {
                                                    "$ref": "#/definitions/util.PageResponse"
                                                },
                                                {
                                                    "type": "object",
                                                    "properties": {
                                                        "list": {
                                                            "type": "array",
                                                            "items": {
                                                                "$ref": "#/definitions/repository.UserScoreRow"
                                                            }
                                                        }
                                                    }
                                                }
                                            ]
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/admin/settings/points": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "系统设置"
                ],
                "summary": "课时积分配置",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/admin/settings/points/{lessonType}": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "系统设置"
                ],
                "summary": "修改课时积分",
                "parameters": [
                    {
                        "type": "string",
                        "description": "课时类型",
                        "name": "lessonType",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "积分",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controller.SetPointsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/challenges": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "仅返回已发布的挑战，附带类型摘要与完成人数",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战"
                ],
                "summary": "获取挑战列表",
                "parameters": [
                    {
                        "type": "string",
                        "description": "标题或 slug 关键字",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "quiz",
                            "puzzle",
                            "ordering",
                            "fillBlank"
                        ],
                        "type": "string",
                        "description": "挑战类型",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "页码",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "每页数量",
                        "name": "perPage",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "allOf": [
                                                {
                                                    "$ref": "#/definitions/util.PageResponse"
                                                },
                                                {
                                                    "type": "object",
                                                    "properties": {
                                                        "list": {
                                                            "type": "array",
                                                            "items": {
                                                                "$ref": "#/definitions/service.ChallengeListItem"
                                                            }
                                                        }
                                                    }
                                                }
                                            ]
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/challenges/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "返回完整题目数据、当前用户成绩与该挑战最高分",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战"
                ],
                "summary": "获取挑战详情",
                "parameters": [
                    {
                        "type": "string",
                        "description": "挑战ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.ChallengeDetail"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/challenges/{id}/submit": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "按挑战类型评分，覆盖该用户之前的成绩",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "挑战"
                ],
                "summary": "提交挑战",
                "parameters": [
                    {
                        "type": "string",
                        "description": "挑战ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "提交内容，只填写与挑战类型对应的字段",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/grading.Submission"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.SubmitResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/health": {
            "get": {
                "description": "检查数据库与 Redis 状态",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "系统"
                ],
                "summary": "健康检查",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/lessons/{id}/complete": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "首次完成时按课时类型计分，重复调用不会重复加分",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "课时"
                ],
                "summary": "完成课时",
                "parameters": [
                    {
                        "type": "string",
                        "description": "课时ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "课时类型",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/controller.CompleteLessonRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.LessonCompletion"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/scores/leaderboard": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "积分"
                ],
                "summary": "排行榜",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "返回条数，默认 10",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "年级，例如 G5",
                        "name": "cohort",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/repository.LeaderboardRow"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/scores/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "课时积分与挑战积分（按类型拆分）",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "积分"
                ],
                "summary": "我的积分",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.DetailedScore"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/api/scores/me/rank": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "排名 = 1 + 总分高于我的人数，同分同名次",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "积分"
                ],
                "summary": "我的排名",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/service.UserRank"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "controller.CompleteLessonRequest": {
            "type": "object",
            "required": [
                "lessonType"
            ],
            "properties": {
                "lessonType": {
                    "type": "string"
                }
            }
        },
        "controller.SetPointsRequest": {
            "type": "object",
            "required": [
                "points"
            ],
            "properties": {
                "points": {
                    "type": "number"
                }
            }
        },
        "grading.FillBlankAnswer": {
            "type": "object",
            "properties": {
                "answer": {
                    "type": "string"
                },
                "questionId": {
                    "type": "string"
                }
            }
        },
        "grading.FillBlankSubmission": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/grading.FillBlankAnswer"
                    }
                }
            }
        },
        "grading.OrderingPosition": {
            "type": "object",
            "properties": {
                "itemId": {
                    "type": "string"
                },
                "position": {
                    "type": "integer"
                }
            }
        },
        "grading.OrderingSubmission": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/grading.OrderingPosition"
                    }
                }
            }
        },
        "grading.PuzzleSubmission": {
            "type": "object",
            "properties": {
                "score": {
                    "type": "number"
                }
            }
        },
        "grading.QuizAnswer": {
            "type": "object",
            "properties": {
                "answerId": {
                    "type": "string"
                },
                "questionId": {
                    "type": "string"
                }
            }
        },
        "grading.QuizSubmission": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/grading.QuizAnswer"
                    }
                }
            }
        },
        "grading.Submission": {
            "type": "object",
            "properties": {
                "fillBlank": {
                    "$ref": "#/definitions/grading.FillBlankSubmission"
                },
                "ordering": {
                    "$ref": "#/definitions/grading.OrderingSubmission"
                },
                "puzzle": {
                    "$ref": "#/definitions/grading.PuzzleSubmission"
                },
                "quiz": {
                    "$ref": "#/definitions/grading.QuizSubmission"
                }
            }
        },
        "model.ChallengeAnswer": {
            "type": "object",
            "properties": {
                "answer": {
                    "type": "string"
                },
                "challengeQuestionId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "is_correct": {
                    "type": "boolean"
                },
                "order": {
                    "type": "integer"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.ChallengeQuestion": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.ChallengeAnswer"
                    }
                },
                "challengeId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "explanation": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order": {
                    "type": "integer"
                },
                "question": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.ChallengeScore": {
            "type": "object",
            "properties": {
                "challengeId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "details": {
                    "type": "object"
                },
                "id": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                },
                "submittedAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "userId": {
                    "type": "integer"
                }
            }
        },
        "model.ChallengeStatus": {
            "type": "string",
            "enum": [
                "draft",
                "published",
                "archived"
            ],
            "x-enum-varnames": [
                "ChallengeDraft",
                "ChallengePublished",
                "ChallengeArchived"
            ]
        },
        "model.ChallengeType": {
            "type": "string",
            "enum": [
                "quiz",
                "puzzle",
                "ordering",
                "fillBlank"
            ],
            "x-enum-varnames": [
                "ChallengeQuiz",
                "ChallengePuzzle",
                "ChallengeOrdering",
                "ChallengeFillBlank"
            ]
        },
        "model.FillBlankChallenge": {
            "type": "object",
            "properties": {
                "challengeId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "questions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.FillBlankQuestion"
                    }
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.FillBlankQuestion": {
            "type": "object",
            "properties": {
                "correct_word": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "fillBlankChallengeId": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order": {
                    "type": "integer"
                },
                "sentence": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.OrderingChallenge": {
            "type": "object",
            "properties": {
                "challengeId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "instruction": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.OrderingItem"
                    }
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.OrderingItem": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                },
                "correct_order": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order": {
                    "type": "integer"
                },
                "orderingChallengeId": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "model.PuzzleChallenge": {
            "type": "object",
            "properties": {
                "challengeId": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "instruction": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "repository.ChallengeSummary": {
            "type": "object",
            "properties": {
                "firstQuestion": {
                    "type": "string"
                },
                "instruction": {
                    "type": "string"
                },
                "itemCount": {
                    "type": "integer"
                },
                "questionCount": {
                    "type": "integer"
                }
            }
        },
        "repository.LeaderboardRow": {
            "type": "object",
            "properties": {
                "avatar": {
                    "type": "string"
                },
                "challengeScore": {
                    "type": "number"
                },
                "fullName": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "lessonScore": {
                    "type": "number"
                },
                "rank": {
                    "type": "integer"
                },
                "totalScore": {
                    "type": "number"
                }
            }
        },
        "repository.UserScoreRow": {
            "type": "object",
            "properties": {
                "avatar": {
                    "type": "string"
                },
                "challengeScore": {
                    "type": "number"
                },
                "email": {
                    "type": "string"
                },
                "fullName": {
                    "type": "string"
                },
                "grade": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "lessonScore": {
                    "type": "number"
                },
                "rank": {
                    "type": "integer"
                },
                "totalScore": {
                    "type": "number"
                }
            }
        },
        "service.ChallengeDetail": {
            "type": "object",
            "properties": {
                "completionCount": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "data": {
                    "type": "object",
                    "additionalProperties": {}
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "maxScore": {
                    "type": "number"
                },
                "order": {
                    "type": "integer"
                },
                "slug": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/model.ChallengeStatus"
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/model.ChallengeType"
                },
                "updatedAt": {
                    "type": "string"
                },
                "userScore": {
                    "$ref": "#/definitions/model.ChallengeScore"
                }
            }
        },
        "service.ChallengeInput": {
            "type": "object",
            "properties": {
                "description": {
                    "type": "string"
                },
                "fillBlank": {
                    "$ref": "#/definitions/model.FillBlankChallenge"
                },
                "order": {
                    "type": "integer"
                },
                "ordering": {
                    "$ref": "#/definitions/model.OrderingChallenge"
                },
                "puzzle": {
                    "$ref": "#/definitions/model.PuzzleChallenge"
                },
                "questions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/model.ChallengeQuestion"
                    }
                },
                "slug": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/model.ChallengeStatus"
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/model.ChallengeType"
                }
            }
        },
        "service.ChallengeListItem": {
            "type": "object",
            "properties": {
                "completionCount": {
                    "type": "integer"
                },
                "createdAt": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "order": {
                    "type": "integer"
                },
                "slug": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/model.ChallengeStatus"
                },
                "summary": {
                    "$ref": "#/definitions/repository.ChallengeSummary"
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "$ref": "#/definitions/model.ChallengeType"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "service.ChallengeScoreBreakdown": {
            "type": "object",
            "properties": {
                "fillBlank": {
                    "type": "number"
                },
                "ordering": {
                    "type": "number"
                },
                "puzzle": {
                    "type": "number"
                },
                "quiz": {
                    "type": "number"
                },
                "total": {
                    "type": "number"
                }
            }
        },
        "service.DetailedScore": {
            "type": "object",
            "properties": {
                "challengeScore": {
                    "$ref": "#/definitions/service.ChallengeScoreBreakdown"
                },
                "lessonScore": {
                    "type": "number"
                },
                "totalScore": {
                    "type": "number"
                },
                "userId": {
                    "type": "integer"
                }
            }
        },
        "service.LessonCompletion": {
            "type": "object",
            "properties": {
                "awarded": {
                    "type": "boolean"
                },
                "lessonId": {
                    "type": "string"
                },
                "lessonType": {
                    "type": "string"
                },
                "points": {
                    "type": "number"
                }
            }
        },
        "service.RemoveResult": {
            "type": "object",
            "properties": {
                "archived": {
                    "type": "boolean"
                },
                "deleted": {
                    "type": "boolean"
                },
                "id": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "service.SubmitResult": {
            "type": "object",
            "properties": {
                "challengeId": {
                    "type": "string"
                },
                "correctAnswers": {
                    "type": "integer"
                },
                "details": {},
                "score": {
                    "type": "number"
                },
                "submittedAt": {
                    "type": "string"
                },
                "totalQuestions": {
                    "type": "integer"
                }
            }
        },
        "service.UserRank": {
            "type": "object",
            "properties": {
                "challengeScore": {
                    "$ref": "#/definitions/service.ChallengeScoreBreakdown"
                },
                "lessonScore": {
                    "type": "number"
                },
                "rank": {
                    "type": "integer"
                },
                "totalScore": {
                    "type": "number"
                },
                "userId": {
                    "type": "integer"
                }
            }
        },
        "util.PageResponse": {
            "type": "object",
            "properties": {
                "list": {},
                "page": {
                    "type": "integer"
                },
                "perPage": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "totalPages": {
                    "type": "integer"
                }
            }
        },
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "data": {},
                "message": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EduChallenge 后端 API",
	Description:      "挑战题库、评分与排行榜服务。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
