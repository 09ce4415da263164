package models

// Database schema overview:
// 1. users - accounts created by signup and checked by login
// 2. interview_preferences - domain, difficulty and interview type chosen by a candidate
