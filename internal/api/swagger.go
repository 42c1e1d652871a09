package api

import "net/http"

// SwaggerJSON serve o documento OpenAPI das rotas administrativas,
// usado pelo time de testes via Postman.
func (h *Handler) SwaggerJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(swaggerDoc))
}

const swaggerDoc = `{
  "openapi": "3.0.0",
  "info": {
    "title": "E2ELAB API",
    "version": "1.0.0",
    "description": "API RESTful para gerenciamento de agendamentos de exames laboratoriais - E2ELAB. Esta API permite operações administrativas e de gerenciamento de usuários e agendamentos.",
    "contact": {"name": "E2ELAB Support", "email": "contato@e2elab.com"}
  },
  "servers": [
    {"url": "http://localhost:8080", "description": "Servidor de desenvolvimento local"},
    {"url": "https://api.e2elab.com", "description": "Servidor de produção"}
  ],
  "tags": [
    {"name": "Users", "description": "Operações de gerenciamento de usuários. Usadas principalmente pelo time de testes e administradores."},
    {"name": "Exams", "description": "Operações administrativas sobre o catálogo de exames."}
  ],
  "paths": {
    "/api/users/delete": {
      "delete": {
        "tags": ["Users"],
        "summary": "Deletar usuário por e-mail",
        "description": "Deleta um usuário do sistema pelo e-mail. Remove o perfil, agendamentos relacionados e a conta. O e-mail pode vir no query parameter ou no body.",
        "operationId": "deleteUserByEmail",
        "parameters": [
          {"name": "email", "in": "query", "required": false, "schema": {"type": "string", "format": "email", "example": "usuario@exemplo.com"}}
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {"email": {"type": "string", "format": "email"}},
                "required": ["email"]
              }
            }
          }
        },
        "security": [{"ApiKeyAuth": []}],
        "responses": {
          "200": {
            "description": "Usuário deletado com sucesso.",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/DeleteUserResponse"}}}
          },
          "400": {"description": "E-mail ausente ou com formato inválido.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "401": {"description": "Chave de serviço ausente ou inválida.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "404": {"description": "Usuário não encontrado com este e-mail.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "500": {"description": "Erro ao deletar usuário.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      }
    },
    "/api/exams/{id}": {
      "put": {
        "tags": ["Exams"],
        "summary": "Atualizar exame",
        "description": "Atualização parcial de um exame do catálogo. Pelo menos um campo deve ser fornecido; campos ausentes não são alterados. PATCH tem a mesma semântica.",
        "operationId": "updateExam",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"$ref": "#/components/schemas/UpdateExamRequest"}
            }
          }
        },
        "security": [{"ApiKeyAuth": []}],
        "responses": {
          "200": {"description": "Exame atualizado com sucesso.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/UpdateExamResponse"}}}},
          "400": {"description": "Body inválido ou campo com tipo errado.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "401": {"description": "Chave de serviço ausente ou inválida.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "404": {"description": "Exame não encontrado.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
          "500": {"description": "Erro ao atualizar exame.", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
        }
      },
      "patch": {
        "tags": ["Exams"],
        "summary": "Atualizar exame (parcial)",
        "description": "Mesma semântica do PUT.",
        "operationId": "patchExam",
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
        ],
        "security": [{"ApiKeyAuth": []}],
        "responses": {
          "200": {"description": "Exame atualizado com sucesso."}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-Service-Key"}
    },
    "schemas": {
      "DeleteUserResponse": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean", "example": true},
          "message": {"type": "string", "example": "Usuário deletado com sucesso"},
          "deletedUserId": {"type": "string", "format": "uuid"},
          "deletedEmail": {"type": "string", "format": "email"}
        }
      },
      "UpdateExamRequest": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "duration": {"type": "integer", "minimum": 1},
          "price": {"type": "number", "minimum": 0},
          "category": {"type": "string"},
          "preparation": {"type": "string"},
          "fasting_required": {"type": "boolean"},
          "fasting_hours": {"type": "integer", "minimum": 0},
          "active": {"type": "boolean"}
        }
      },
      "UpdateExamResponse": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string", "example": "Exame atualizado com sucesso"},
          "exam": {"type": "object"}
        }
      },
      "ErrorResponse": {
        "type": "object",
        "properties": {
          "error": {"type": "string", "example": "Erro ao deletar usuário"},
          "details": {"type": "string", "example": "Erro ao buscar usuário no banco de dados"}
        }
      }
    }
  }
}`
