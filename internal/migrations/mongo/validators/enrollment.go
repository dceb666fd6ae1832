package validators

import "go.mongodb.org/mongo-driver/bson"

var EnrollmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "cpf", "userId"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":  bson.M{"bsonType": "objectId"},
			"name": bson.M{"bsonType": "string", "minLength": 3},
			"cpf": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9]{11}$",
			},
			"phone":    bson.M{"bsonType": "string"},
			"birthday": bson.M{"bsonType": "date"},
			"userId":   objectIDString,
		},
	},
}

var SessionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"userId", "token"},
		"properties": bson.M{
			"_id":       bson.M{"bsonType": "objectId"},
			"userId":    objectIDString,
			"token":     bson.M{"bsonType": "string", "minLength": 1},
			"createdAt": bson.M{"bsonType": "date"},
		},
	},
}
