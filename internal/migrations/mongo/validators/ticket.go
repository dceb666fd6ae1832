package validators

import "go.mongodb.org/mongo-driver/bson"

var TicketTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "price", "isRemote", "includesHotel"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":           bson.M{"bsonType": "objectId"},
			"name":          bson.M{"bsonType": "string", "minLength": 1},
			"price":         bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			"isRemote":      bson.M{"bsonType": "bool"},
			"includesHotel": bson.M{"bsonType": "bool"},
		},
	},
}

var TicketValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"ticketTypeId", "enrollmentId", "status"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":          bson.M{"bsonType": "objectId"},
			"ticketTypeId": objectIDString,
			"enrollmentId": objectIDString,
			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"RESERVED", "PAID"},
			},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	},
}
